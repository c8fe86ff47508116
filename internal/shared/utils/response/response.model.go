package response

import "time"

// Envelope is the JSON body every DexView handler returns, success or error.
type Envelope struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	ServedAt   time.Time   `json:"served_at"`
}
