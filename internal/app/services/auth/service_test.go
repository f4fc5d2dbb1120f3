package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/app/services/auth"
	domainuser "bookingengine/internal/domain/user"
	"bookingengine/internal/infra/security"
	"bookingengine/internal/infra/storage/memory"
)

func newService(ttl time.Duration) *auth.Service {
	return &auth.Service{
		Users:      memory.NewUserRepository(),
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: ttl,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(time.Hour)
	ctx := context.Background()

	registered, err := svc.Register(ctx, auth.RegisterParams{
		Email:    "Guest@Example.com",
		Name:     "Guest One",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "guest@example.com", registered.User.Email)
	require.True(t, registered.User.HasRole(domainuser.RoleGuest))
	require.False(t, registered.User.HasRole(domainuser.RoleAdmin))

	logged, err := svc.Login(ctx, auth.LoginParams{Email: "guest@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, logged.Token)
	require.NotEqual(t, registered.Token, logged.Token)

	_, err = svc.Login(ctx, auth.LoginParams{Email: "guest@example.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginParams{Email: "nobody@example.com", Password: "s3cret-pass"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterParams{Email: "a@b.com", Name: "A", Password: "short"})
	require.ErrorIs(t, err, auth.ErrPasswordTooShort)

	_, err = svc.Register(ctx, auth.RegisterParams{Name: "A", Password: "long-enough"})
	require.ErrorIs(t, err, domainuser.ErrEmailRequired)

	_, err = svc.Register(ctx, auth.RegisterParams{Email: "a@b.com", Name: "A", Password: "long-enough"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, auth.RegisterParams{Email: "A@B.com", Name: "B", Password: "long-enough"})
	require.ErrorIs(t, err, domainuser.ErrEmailAlreadyUsed)
}

func TestRegister_AdminRole(t *testing.T) {
	svc := newService(time.Hour)
	res, err := svc.Register(context.Background(), auth.RegisterParams{
		Email: "ops@example.com", Name: "Ops", Password: "long-enough", Admin: true,
	})
	require.NoError(t, err)
	require.True(t, res.User.HasRole(domainuser.RoleAdmin))
}

func TestResolveToken(t *testing.T) {
	svc := newService(time.Hour)
	ctx := context.Background()

	res, err := svc.Register(ctx, auth.RegisterParams{
		Email: "a@b.com", Name: "A", Password: "long-enough",
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveToken(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, resolved.User.ID)

	require.NoError(t, svc.Logout(ctx, res.Token))
	_, err = svc.ResolveToken(ctx, res.Token)
	require.Error(t, err)
}

func TestResolveToken_ExpiredSessionIsEvicted(t *testing.T) {
	svc := newService(time.Millisecond)
	ctx := context.Background()

	res, err := svc.Register(ctx, auth.RegisterParams{
		Email: "a@b.com", Name: "A", Password: "long-enough",
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.ResolveToken(ctx, res.Token)
	require.ErrorIs(t, err, auth.ErrSessionExpired)

	// the expired session is gone, a second resolve misses entirely
	_, err = svc.ResolveToken(ctx, res.Token)
	require.NotErrorIs(t, err, auth.ErrSessionExpired)
	require.Error(t, err)
}
