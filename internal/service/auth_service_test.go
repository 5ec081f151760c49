package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]domain.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, repository.ErrDuplicateEntry
	}
	user.ID = len(r.users) + 1
	r.users[user.Username] = *user
	created := *user
	return &created, nil
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestAuthService() (*AuthService, *fakeUserRepository) {
	repo := newFakeUserRepository()
	return NewAuthService(repo, "test-secret", time.Hour), repo
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterUserDTO{
		Username: "jdoe",
		Password: "s3cret",
		Name:     "Dr. Doe",
		Role:     domain.RoleICUManager,
		Ward:     "ICU",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleICUManager, user.Role)
	assert.Empty(t, user.Password, "password hash never leaves the service")

	resp, err := svc.Login(ctx, domain.LoginUserDTO{Username: "jdoe", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jdoe", resp.Username)
	assert.Equal(t, "ICU", resp.Ward)

	_, claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", claims["username"])
	assert.Equal(t, domain.RoleICUManager, claims["role"])
	assert.Equal(t, "ICU", claims["ward"])
}

func TestAuthService_Register_DefaultsToWardStaff(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), domain.RegisterUserDTO{
		Username: "nurse",
		Password: "pw",
		Name:     "Nurse Lee",
		Ward:     "ER",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleWardStaff, user.Role)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "x", Password: "pw", Role: "janitor"})
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = svc.Register(ctx, domain.RegisterUserDTO{Username: "jdoe", Password: "pw", Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.RegisterUserDTO{Username: "jdoe", Password: "other", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Login(ctx, domain.LoginUserDTO{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, domain.RegisterUserDTO{Username: "jdoe", Password: "right", Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Login(ctx, domain.LoginUserDTO{Username: "jdoe", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Rejections(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "jdoe", Password: "pw", Role: domain.RoleAdmin})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, domain.LoginUserDTO{Username: "jdoe", Password: "pw"})
	require.NoError(t, err)

	_, _, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// A token signed with a different secret does not validate.
	other := NewAuthService(newFakeUserRepository(), "other-secret", time.Hour)
	_, _, err = other.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// An expired token does not validate.
	expired := NewAuthService(newFakeUserRepository(), "test-secret", -time.Minute)
	expiredResp, err := func() (*domain.AuthResponseDTO, error) {
		if _, err := expired.Register(ctx, domain.RegisterUserDTO{Username: "old", Password: "pw", Role: domain.RoleAdmin}); err != nil {
			return nil, err
		}
		return expired.Login(ctx, domain.LoginUserDTO{Username: "old", Password: "pw"})
	}()
	require.NoError(t, err)
	_, _, err = svc.ValidateToken(expiredResp.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
