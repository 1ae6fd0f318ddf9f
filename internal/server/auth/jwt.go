// Package auth issues and verifies the bearer tokens handed to administrators
// after login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock"
)

// Claims carries the account identity alongside the standard iat/exp.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"id"`
	Email     string `json:"email"`
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	AccountID string
	Email     string
	ExpiresAt time.Time
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenService(secret string, ttl time.Duration, clk clock.Clock) *TokenService {
	if clk == nil {
		clk = clock.WallClock
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, clock: clk}
}

// Issue signs an HS256 token valid for the configured TTL.
func (s *TokenService) Issue(accountID, email string) (string, error) {
	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		AccountID: accountID,
		Email:     email,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry. Every failure wraps
// common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", common.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.AccountID == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
