package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/skillnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

var ErrTokenInvalid = errors.New("invalid or expired session token")

// AuthConfig selects how session tokens are verified. PublicKeyPEM takes
// RS256 tokens issued by the identity provider; HMACSecret takes HS256
// tokens minted locally. Either or both may be set.
type AuthConfig struct {
	PublicKeyPEM string
	HMACSecret   string
	Issuer       string
	Leeway       time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Metadata       map[string]any `json:"metadata,omitempty"`
	PublicMetadata map[string]any `json:"public_metadata,omitempty"`
	Role           string         `json:"role,omitempty"`
}

func (c *sessionClaims) role() string {
	for _, m := range []map[string]any{c.Metadata, c.PublicMetadata} {
		if r, ok := m["role"].(string); ok && strings.TrimSpace(r) != "" {
			return strings.TrimSpace(r)
		}
	}
	return strings.TrimSpace(c.Role)
}

type AuthService interface {
	Configured() bool
	Verify(tokenString string) (*ctxutil.AuthData, error)
	// SetContextFromToken attaches the caller identity to ctx. An empty token
	// leaves ctx untouched.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	log     *logger.Logger
	rsaKey  *rsa.PublicKey
	hmacKey []byte
	opts    []jwt.ParserOption
}

func NewAuthService(baseLog *logger.Logger, cfg AuthConfig) (AuthService, error) {
	as := &authService{log: baseLog.With("service", "AuthService")}
	if pem := strings.TrimSpace(cfg.PublicKeyPEM); pem != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("parse session public key: %w", err)
		}
		as.rsaKey = key
	}
	if secret := strings.TrimSpace(cfg.HMACSecret); secret != "" {
		as.hmacKey = []byte(secret)
	}
	as.opts = []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "HS256"}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Leeway > 0 {
		as.opts = append(as.opts, jwt.WithLeeway(cfg.Leeway))
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		as.opts = append(as.opts, jwt.WithIssuer(iss))
	}
	if !as.Configured() {
		as.log.Warn("no session token key configured; authenticated routes will reject every request")
	}
	return as, nil
}

func (as *authService) Configured() bool {
	return as.rsaKey != nil || len(as.hmacKey) > 0
}

func (as *authService) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodRSA:
		if as.rsaKey != nil {
			return as.rsaKey, nil
		}
	case *jwt.SigningMethodHMAC:
		if len(as.hmacKey) > 0 {
			return as.hmacKey, nil
		}
	}
	return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
}

func (as *authService) Verify(tokenString string) (*ctxutil.AuthData, error) {
	if !as.Configured() {
		return nil, ErrTokenInvalid
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, as.keyFunc, as.opts...)
	if err != nil || !parsed.Valid {
		as.log.Debug("session token rejected", "error", err)
		return nil, ErrTokenInvalid
	}
	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return &ctxutil.AuthData{UserID: sub, Role: claims.role()}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	ad, err := as.Verify(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithAuthData(ctx, ad), nil
}
