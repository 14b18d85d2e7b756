package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arturoeanton/roadmapai/internal/domain"
	"github.com/arturoeanton/roadmapai/internal/port"
)

// JWTConfig holds credential signing configuration.
type JWTConfig struct {
	Secret    string
	Issuer    string
	ExpiresIn time.Duration
}

// Claims is the credential payload.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer implements port.TokenIssuer with HS256 tokens.
type JWTIssuer struct {
	cfg JWTConfig
	now func() time.Time
}

// NewJWTIssuer fails when no secret is configured.
func NewJWTIssuer(cfg JWTConfig) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is not defined")
	}
	if cfg.ExpiresIn <= 0 {
		cfg.ExpiresIn = 7 * 24 * time.Hour
	}
	return &JWTIssuer{cfg: cfg, now: time.Now}, nil
}

// WithClock overrides the time source used for issuing and verifying.
func (j *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	j.now = now
	return j
}

// TTL is how long an issued credential stays valid.
func (j *JWTIssuer) TTL() time.Duration { return j.cfg.ExpiresIn }

// Issue signs a credential carrying the user's id, email and name.
func (j *JWTIssuer) Issue(u *domain.User) (string, error) {
	now := j.now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    j.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.ExpiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and issuer. Every failure,
// including a panic inside the parser, becomes a KindTokenInvalid error.
func (j *JWTIssuer) Verify(tokenString string) (id *domain.Identity, err error) {
	defer func() {
		if r := recover(); r != nil {
			id, err = nil, port.TokenInvalid(fmt.Errorf("parse panic: %v", r))
		}
	}()

	if tokenString == "" {
		return nil, port.TokenInvalid(errors.New("empty token"))
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}
	if j.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.cfg.Issuer))
	}

	var claims Claims
	if _, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(j.cfg.Secret), nil
	}, opts...); err != nil {
		return nil, port.TokenInvalid(err)
	}

	if claims.UserID == "" || claims.Email == "" {
		return nil, port.TokenInvalid(errors.New("invalid token payload"))
	}
	name := claims.Name
	if name == "" {
		name = "User"
	}
	return &domain.Identity{UserID: claims.UserID, Email: claims.Email, Name: name}, nil
}
