package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pethivehttp "github.com/pethive/pethive/pkg/http"
	"github.com/pethive/pethive/pkg/testkit"
)

const testKid = "test-key-1"

func setupGoogleCerts(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	n := base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes())
	e := base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes())
	certs := fmt.Sprintf(`{"keys":[{"kid":%q,"kty":"RSA","alg":"RS256","n":%q,"e":%q}]}`, testKid, n, e)

	mt := testkit.NewMockTransport()
	mt.Stub("GET", "googleapis.com/oauth2/v3/certs", 200, []byte(certs))
	pethivehttp.DefaultClient.Transport = mt
	t.Cleanup(pethivehttp.ResetTransport)

	// Force a refetch so the stubbed key set is what gets cached.
	certsMu.Lock()
	certsCache = nil
	certsFetched = time.Time{}
	certsMu.Unlock()

	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = testKid
	signed, err := tok.SignedString(key)
	require.NoError(t, err)
	return signed
}

func googleClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"email":          "jane@example.com",
		"email_verified": true,
		"name":           "Jane Doe",
		"picture":        "https://example.com/jane.png",
		"exp":            time.Now().Add(time.Hour).Unix(),
		"iat":            time.Now().Add(-time.Minute).Unix(),
	}
}

func TestVerifyGoogleIDToken(t *testing.T) {
	key := setupGoogleCerts(t)

	claims, err := VerifyGoogleIDToken(signToken(t, key, googleClaims()))
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.Equal(t, "https://example.com/jane.png", claims.Picture)
}

func TestVerifyGoogleIDTokenRejectsExpired(t *testing.T) {
	key := setupGoogleCerts(t)

	c := googleClaims()
	c["exp"] = time.Now().Add(-time.Hour).Unix()

	_, err := VerifyGoogleIDToken(signToken(t, key, c))
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}

func TestVerifyGoogleIDTokenRejectsWrongIssuer(t *testing.T) {
	key := setupGoogleCerts(t)

	c := googleClaims()
	c["iss"] = "https://evil.example.com"

	_, err := VerifyGoogleIDToken(signToken(t, key, c))
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}

func TestVerifyGoogleIDTokenRejectsUnverifiedEmail(t *testing.T) {
	key := setupGoogleCerts(t)

	c := googleClaims()
	c["email_verified"] = false

	_, err := VerifyGoogleIDToken(signToken(t, key, c))
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}

func TestVerifyGoogleIDTokenRejectsWrongKey(t *testing.T) {
	setupGoogleCerts(t)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	_, err = VerifyGoogleIDToken(signToken(t, other, googleClaims()))
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}

func TestVerifyGoogleIDTokenGarbage(t *testing.T) {
	setupGoogleCerts(t)

	_, err := VerifyGoogleIDToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}
