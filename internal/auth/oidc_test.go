package auth

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/GoPowerDNS-Admin/authkit/internal/authority"
	"github.com/GoPowerDNS-Admin/authkit/internal/claims"
)

const (
	testIssuer   = "https://idp.example.com"
	testClientID = "authkit"
)

func signIDToken(t *testing.T, key *rsa.PrivateKey, c jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, c).SignedString(key)
	require.NoError(t, err)

	return raw
}

func idTokenClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":         testIssuer,
		"aud":         testClientID,
		"sub":         sub,
		"email":       sub + "@example.com",
		"given_name":  "Anna",
		"family_name": "Smith",
		"scope":       "email profile",
		"exp":         time.Now().Add(time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}
}

// newTestOIDCProvider returns a provider whose verifier trusts key and whose
// token endpoint is tokenURL.
func newTestOIDCProvider(t *testing.T, key *rsa.PrivateKey, tokenURL string) *OIDCProvider {
	t.Helper()

	n, err := authority.New(authority.Config{
		DefaultRoles:       []string{"ROLE_USER"},
		CaseTransformation: authority.ToUpperCase,
	})
	require.NoError(t, err)

	converter, err := claims.NewConverter(claims.Config{}, n)
	require.NoError(t, err)

	verifier := oidc.NewVerifier(
		testIssuer,
		&oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}},
		&oidc.Config{ClientID: testClientID},
	)

	return newOIDCProvider(&OIDCConfig{
		Enabled:      true,
		ClientID:     testClientID,
		ClientSecret: "secret",
		RedirectURL:  "https://app.example.com/callback",
	}, oauth2.Endpoint{
		AuthURL:   testIssuer + "/authorize",
		TokenURL:  tokenURL,
		AuthStyle: oauth2.AuthStyleInParams,
	}, verifier, converter)
}

func newTokenEndpoint(t *testing.T, response map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(srv.Close)

	return srv
}

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(context.Context, string) (*oidc.IDToken, error) {
	return nil, errors.New("signature mismatch")
}

func TestNewOIDCProvider_Disabled(t *testing.T) {
	_, err := NewOIDCProvider(context.Background(), &OIDCConfig{}, nil)
	assert.ErrorIs(t, err, ErrOIDCDisabled)
}

func TestOIDCProvider_AuthCodeURL(t *testing.T) {
	p := newOIDCProvider(&OIDCConfig{
		Enabled:     true,
		ClientID:    "authkit",
		RedirectURL: "https://app.example.com/callback",
	}, oauth2.Endpoint{AuthURL: "https://idp.example.com/authorize"}, rejectingVerifier{}, nil)

	state, err := GenerateStateToken()
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	u, err := url.Parse(p.AuthCodeURL(state))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "idp.example.com", u.Host)
	assert.Equal(t, "authkit", q.Get("client_id"))
	assert.Equal(t, state, q.Get("state"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
}

func TestOIDCProvider_VerifyToken_Rejected(t *testing.T) {
	converter, err := claims.NewConverter(claims.Config{}, nil)
	require.NoError(t, err)

	p := newOIDCProvider(&OIDCConfig{Enabled: true}, oauth2.Endpoint{}, rejectingVerifier{}, converter)

	_, err = p.VerifyToken(context.Background(), "raw")
	assert.ErrorContains(t, err, "failed to verify ID token")
}

func TestOIDCProvider_VerifyToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	p := newTestOIDCProvider(t, key, "")

	a, err := p.VerifyToken(context.Background(), signIDToken(t, key, idTokenClaims("anna")))
	require.NoError(t, err)

	assert.Equal(t, "anna", a.Name())
	assert.Equal(t, claims.Principal{
		Subject:   "anna",
		FirstName: "Anna",
		LastName:  "Smith",
		Email:     "anna@example.com",
	}, a.Principal)
	assert.Equal(t, []string{"ROLE_EMAIL", "ROLE_PROFILE", "ROLE_USER"}, a.Authorities.Strings())
}

func TestOIDCProvider_VerifyToken_Errors(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	p := newTestOIDCProvider(t, key, "")

	wrongAudience := idTokenClaims("anna")
	wrongAudience["aud"] = "someone-else"

	expired := idTokenClaims("anna")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noSubject := idTokenClaims("anna")
	delete(noSubject, "sub")

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"foreign key", signIDToken(t, other, idTokenClaims("anna")), nil},
		{"wrong audience", signIDToken(t, key, wrongAudience), nil},
		{"expired", signIDToken(t, key, expired), nil},
		{"no subject", signIDToken(t, key, noSubject), claims.ErrClaimResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errVerify := p.VerifyToken(context.Background(), tt.token)
			require.Error(t, errVerify)

			if tt.want != nil {
				assert.ErrorIs(t, errVerify, tt.want)
			}
		})
	}
}

func TestOIDCProvider_HandleCallback(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newTokenEndpoint(t, map[string]any{
		"access_token": "access",
		"token_type":   "Bearer",
		"expires_in":   3600,
		"id_token":     signIDToken(t, key, idTokenClaims("bob")),
	})

	p := newTestOIDCProvider(t, key, srv.URL)

	a, err := p.HandleCallback(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "bob", a.Name())
	assert.True(t, a.HasAuthority("ROLE_PROFILE"))

	_, err = p.HandleCallback(context.Background(), "bad-code")
	assert.ErrorContains(t, err, "failed to exchange token")
}

func TestOIDCProvider_HandleCallback_NoIDToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := newTokenEndpoint(t, map[string]any{
		"access_token": "access",
		"token_type":   "Bearer",
	})

	_, err = newTestOIDCProvider(t, key, srv.URL).HandleCallback(context.Background(), "good-code")
	assert.ErrorIs(t, err, ErrNoIDToken)
}

func TestGenerateStateToken_Unique(t *testing.T) {
	a, err := GenerateStateToken()
	require.NoError(t, err)

	b, err := GenerateStateToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
