package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/config"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/users"
)

type fakeRepository struct {
	mu      sync.Mutex
	byID    map[string]*users.User
	byEmail map[string]*users.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:    make(map[string]*users.User),
		byEmail: make(map[string]*users.User),
	}
}

func (r *fakeRepository) CreateUser(_ context.Context, user *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byID[user.ID.String()] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeRepository) GetUserByEmail(_ context.Context, email string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *fakeRepository) GetUserByID(_ context.Context, id string) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *fakeRepository) UpdateUserPassword(_ context.Context, userID, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeRepository) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.JWTExpiresIn = 15 * time.Minute
	cfg.JWT.RefreshExpiresIn = 24 * time.Hour
	return NewService(repo, cfg), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, string(users.RoleCustomer), resp.User.Role)

	// password must be stored hashed
	stored := repo.byEmail["ada@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	login, err := svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := &RegisterRequest{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", Password: "secret123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterUnknownRoleDefaultsToCustomer(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Password:  "secret123",
		Role:      "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, string(users.RoleCustomer), resp.User.Role)
}

func TestValidateToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Password:  "secret123",
		Role:      "ADMIN",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "access", claims.Type)

	_, err = svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	// access tokens must not be accepted on the refresh endpoint
	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}
