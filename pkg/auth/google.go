package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pethive/pethive/config"
	pethivehttp "github.com/pethive/pethive/pkg/http"
)

// googleCertsURL serves Google's current token-signing keys as a JWK set.
const googleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

// certsTTL controls how long a fetched key set is reused before refetching.
const certsTTL = time.Hour

// ErrInvalidGoogleToken is returned for any token that fails verification.
var ErrInvalidGoogleToken = errors.New("auth: invalid google id token")

// GoogleClaims is the payload extracted from a verified Google ID token.
type GoogleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// ------------------- JWK set cache -------------------

type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

var (
	certsMu      sync.Mutex
	certsFetched time.Time
	certsCache   map[string]*rsa.PublicKey
)

func googleKey(kid string) (*rsa.PublicKey, error) {
	certsMu.Lock()
	defer certsMu.Unlock()

	if time.Since(certsFetched) > certsTTL || certsCache == nil {
		resp, err := pethivehttp.Get(googleCertsURL).
			Timeout(5 * time.Second).
			Retry(2, time.Second).
			Send()
		if err != nil {
			return nil, fmt.Errorf("auth: fetch google certs: %w", err)
		}

		var set jwkSet
		if err := resp.JSON(&set); err != nil {
			return nil, fmt.Errorf("auth: parse google certs: %w", err)
		}

		keys := make(map[string]*rsa.PublicKey, len(set.Keys))
		for _, k := range set.Keys {
			if k.Kty != "RSA" {
				continue
			}
			pub, err := parseRSAKey(k)
			if err != nil {
				continue
			}
			keys[k.Kid] = pub
		}

		certsCache = keys
		certsFetched = time.Now()
	}

	key, ok := certsCache[kid]
	if !ok {
		return nil, fmt.Errorf("auth: no google cert for kid %q", kid)
	}
	return key, nil
}

func parseRSAKey(k jwk) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}

// ------------------- Verification -------------------

// VerifyGoogleIDToken verifies the signature, issuer, expiry, and audience of
// a Google-issued ID token and returns its claims.
func VerifyGoogleIDToken(idToken string) (*GoogleClaims, error) {
	claims := &GoogleClaims{}

	token, err := jwt.ParseWithClaims(idToken, claims, func(tok *jwt.Token) (interface{}, error) {
		kid, _ := tok.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("auth: token missing kid header")
		}
		return googleKey(kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer("https://accounts.google.com"),
		jwt.WithAudience(config.GoogleClientID()),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidGoogleToken
	}

	if claims.Email == "" || !claims.EmailVerified {
		return nil, ErrInvalidGoogleToken
	}

	return claims, nil
}
