package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// peekToken decodes the token's claims WITHOUT verifying the signature and
// summarizes them for the failure panel. Diagnostics only; the backend's
// introspection endpoint is the sole authority on validity.
func peekToken(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return fmt.Sprintf("opaque token (len=%d)", len(token))
	}

	sub, _ := claims["sub"].(string)
	summary := fmt.Sprintf("token len=%d", len(token))
	if sub != "" {
		summary += " sub=" + sub
	}
	if exp, ok := claims["exp"].(float64); ok {
		expTime := time.Unix(int64(exp), 0).UTC()
		summary += " exp=" + expTime.Format(time.RFC3339)
		if time.Now().After(expTime) {
			summary += " (expired)"
		}
	}
	return summary
}
