// internal/relay/token.go
package relay

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// peerTokenTTL bounds how long a minted peer token stays presentable.
const peerTokenTTL = 24 * time.Hour

// PeerToken mints a signed token identifying a session to a relay that
// authenticates its peers. The signing secret is shared out of band.
func PeerToken(secret []byte, sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(peerTokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("mint peer token: %w", err)
	}
	return token, nil
}

// VerifyPeerToken checks the signature and expiry of a presented peer token
// and returns the session id it names.
func VerifyPeerToken(secret []byte, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("verify peer token: %w", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("verify peer token: missing subject")
	}
	return claims.Subject, nil
}
