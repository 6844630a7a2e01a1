package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/pkg/utils"
)

type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	Type Kind `json:"typ"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Remaining is how long the token stays valid after now.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// Revoker tracks token IDs invalidated before their expiry.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// Consume revokes jti and reports whether this call was the one that did,
	// so a single-use token is accepted at most once.
	Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// NopRevoker is used when no revocation store is configured.
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }
func (NopRevoker) IsRevoked(context.Context, string) (bool, error)     { return false, nil }
func (NopRevoker) Consume(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *Issuer) TTL(kind Kind) time.Duration {
	if kind == Refresh {
		return i.refreshTTL
	}
	return i.accessTTL
}

// Issue signs a token of the given kind for userID.
func (i *Issuer) Issue(userID uuid.UUID, kind Kind) (string, *Claims, error) {
	jti, err := utils.GenerateKey("", 32)
	if err != nil {
		return "", nil, fmt.Errorf("generate jti: %w", err)
	}

	now := i.now()
	claims := &Claims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL(kind))),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse verifies signature, expiry and kind.
func (i *Issuer) Parse(raw string, kind Kind) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != kind || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
