package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identify one session of one account. AuthTime is the last time the
// password was checked; it drives the recent-login rule.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	SID      string `json:"sid"`
	AuthTime int64  `json:"auth_time"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

// RecentLogin reports whether the password was checked within window.
func (c *Claims) RecentLogin(now time.Time, window time.Duration) bool {
	return now.Sub(time.Unix(c.AuthTime, 0)) <= window
}

func signToken(secret []byte, c *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(secret)
}

func parseToken(secret []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" || claims.SID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
