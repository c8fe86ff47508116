package payments

// MonnifyKeys is what the checkout page needs to mount the Monnify inline
// widget; the secret never leaves the server.
type MonnifyKeys struct {
	PublicKey    string `json:"public_key"`
	ContractCode string `json:"contract_code"`
}
