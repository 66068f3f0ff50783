package relay

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultIssuer   = "mailgun-relay"
	defaultAudience = "mailgun-relay-api"
)

// TokenClaims is what a validated token tells the relay about its caller.
type TokenClaims struct {
	Subject   string
	Scopes    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// JWTClaims are the claims carried in relay tokens.
type JWTClaims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HS256 tokens with a shared secret.
type JWTService struct {
	secretKey []byte
	tokenTTL  time.Duration
	issuer    string
}

// NewJWTService creates a token service. A zero ttl defaults to one hour.
func NewJWTService(secretKey string, tokenTTL time.Duration) *JWTService {
	if tokenTTL == 0 {
		tokenTTL = time.Hour
	}
	return &JWTService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		issuer:    defaultIssuer,
	}
}

// GenerateToken signs a token for subject.
func (j *JWTService) GenerateToken(subject string, scopes []string) (string, error) {
	now := time.Now()
	if scopes == nil {
		scopes = []string{}
	}

	claims := JWTClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   subject,
			Audience:  []string{defaultAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", relayErrors.NewWithCause(ErrTokenGenerationFailed, err)
	}
	return signed, nil
}

// ValidateToken checks signature, expiry, issuer and audience.
func (j *JWTService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(defaultAudience),
	)
	if err != nil {
		return nil, relayErrors.NewWithCause(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, relayErrors.New(ErrInvalidToken).WithDetail("error", "token is invalid")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, relayErrors.New(ErrInvalidToken).WithDetail("error", "invalid claims type")
	}

	return &TokenClaims{
		Subject:   claims.Subject,
		Scopes:    claims.Scopes,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
