package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/transparency-backend/internal/domain"
	"github.com/yungbote/transparency-backend/internal/platform/apierr"
)

func newAuth(d *testDeps) AuthService {
	return NewAuthService(d.db, d.log, d.users, d.companies, AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
}

func TestSignupAndLogin(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	svc := newAuth(d)

	token, err := svc.Signup(ctx, SignupInput{Email: " Ana@Acme.test ", Password: "pw", CompanyName: " Acme "})
	require.NoError(t, err)

	id, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.NotNil(t, id.CompanyID)

	u, err := d.users.GetByEmail(ctx, nil, "ana@acme.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, u.ID, id.UserID)
	require.Equal(t, *u.CompanyID, *id.CompanyID)
	require.NotEqual(t, "pw", u.PasswordHash)

	var company domain.Company
	require.NoError(t, d.db.First(&company, "id = ?", *u.CompanyID).Error)
	require.Equal(t, "Acme", company.Name)

	loginToken, err := svc.Login(ctx, "ana@acme.test", "pw")
	require.NoError(t, err)
	loginID, err := svc.ParseToken(loginToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, loginID.UserID)
}

func TestSignupWithoutCompany(t *testing.T) {
	d := newTestDeps(t)
	token, err := newAuth(d).Signup(context.Background(), SignupInput{Email: "solo@x.test", Password: "pw"})
	require.NoError(t, err)
	id, err := newAuth(d).ParseToken(token)
	require.NoError(t, err)
	require.Nil(t, id.CompanyID)
}

func TestSignupErrors(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	svc := newAuth(d)

	_, err := svc.Signup(ctx, SignupInput{Email: "a@x.test"})
	require.Equal(t, 400, apierr.StatusOf(err))

	_, err = svc.Signup(ctx, SignupInput{Email: "a@x.test", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Signup(ctx, SignupInput{Email: "A@X.test", Password: "other"})
	require.Equal(t, 409, apierr.StatusOf(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	svc := newAuth(d)
	_, err := svc.Signup(ctx, SignupInput{Email: "a@x.test", Password: "pw"})
	require.NoError(t, err)

	for _, tc := range []struct{ email, password string }{
		{"a@x.test", "wrong"},
		{"missing@x.test", "pw"},
	} {
		_, err := svc.Login(ctx, tc.email, tc.password)
		ae, ok := apierr.As(err)
		require.True(t, ok, "%s", tc.email)
		require.Equal(t, 401, ae.Status)
		require.Equal(t, "invalid_credentials", ae.Code)
	}

	_, err = svc.Login(ctx, "", "")
	require.Equal(t, 400, apierr.StatusOf(err))
}

func TestParseTokenRejects(t *testing.T) {
	d := newTestDeps(t)
	svc := newAuth(d)

	_, err := svc.ParseToken("")
	require.Equal(t, 401, apierr.StatusOf(err))
	_, err = svc.ParseToken("garbage")
	require.Equal(t, 401, apierr.StatusOf(err))

	other := NewAuthService(d.db, d.log, d.users, d.companies, AuthConfig{JWTSecret: "other", BcryptCost: bcrypt.MinCost})
	token, err := other.Signup(context.Background(), SignupInput{Email: "b@x.test", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.ParseToken(token)
	require.Equal(t, 401, apierr.StatusOf(err))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID: "00000000-0000-4000-8000-000000000000",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(signed)
	require.Equal(t, 401, apierr.StatusOf(err))
}
