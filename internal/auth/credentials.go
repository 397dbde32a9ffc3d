package auth

import (
	"fmt"
	"net/http"
)

// Alpaca authentication headers
const (
	HeaderKeyID     = "APCA-API-KEY-ID"
	HeaderSecretKey = "APCA-API-SECRET-KEY"
)

// Credentials holds the static Alpaca API key pair
type Credentials struct {
	keyID     string
	secretKey string
}

// NewCredentials creates credentials from an API key id and secret
func NewCredentials(keyID, secretKey string) (*Credentials, error) {
	if keyID == "" {
		return nil, fmt.Errorf("api key id is required")
	}
	if secretKey == "" {
		return nil, fmt.Errorf("api secret key is required")
	}

	return &Credentials{
		keyID:     keyID,
		secretKey: secretKey,
	}, nil
}

// KeyID returns the API key id
func (c *Credentials) KeyID() string {
	return c.keyID
}

// Apply sets the authentication headers on an outbound request
func (c *Credentials) Apply(req *http.Request) {
	req.Header.Set(HeaderKeyID, c.keyID)
	req.Header.Set(HeaderSecretKey, c.secretKey)
}

// String masks the secret so credentials are safe to log
func (c *Credentials) String() string {
	return fmt.Sprintf("Credentials{keyID: %s, secretKey: %s}", c.keyID, mask(c.secretKey))
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
