package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "ecohaven-backend"

// Principal kinds carried in the token.
const (
	KindAccount = "account"
	KindStaff   = "staff"
)

var ErrEmptySecret = errors.New("jwt secret must not be empty")

// Claims defines the JWT claims structure. It is a snapshot of the
// principal at issue time and is only trusted for authorisation.
type Claims struct {
	Kind       string `json:"kind"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`
	jwt.RegisteredClaims
}

// ID returns the numeric subject.
func (c *Claims) ID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// TokenSubject is what the manager needs to issue a token.
type TokenSubject struct {
	ID         int64
	Kind       string
	Email      string
	FullName   string
	Role       string
	ProfilePic string
}

// JWTManager signs and verifies HS256 tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Generate creates a signed access token for the subject.
func (m *JWTManager) Generate(s TokenSubject) (string, error) {
	issuedAt := m.now()
	claims := &Claims{
		Kind:       s.Kind,
		Email:      s.Email,
		FullName:   s.FullName,
		Role:       s.Role,
		ProfilePic: s.ProfilePic,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(s.ID, 10),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// Validate parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Kind != KindAccount && claims.Kind != KindStaff {
		return nil, fmt.Errorf("invalid token kind %q", claims.Kind)
	}
	if _, err := claims.ID(); err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}
	return claims, nil
}
