package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the token payload carried by access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	IsGuest  bool   `json:"is_guest,omitempty"`
	Type     string `json:"type"` // "access" or "refresh"
}

// Manager signs and verifies HMAC tokens.
type Manager struct {
	secretKey     []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
}

// NewManager creates a JWT manager
func NewManager(secret string, accessExpiry, refreshExpiry time.Duration, issuer string) *Manager {
	return &Manager{
		secretKey:     []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		issuer:        issuer,
	}
}

// TokenPair holds an access token and its refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// GeneratePair issues an access/refresh token pair for a user.
func (m *Manager) GeneratePair(userID uint64, username string, isGuest bool) (*TokenPair, error) {
	access, err := m.generate(userID, username, isGuest, "access", m.accessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := m.generate(userID, username, isGuest, "refresh", m.refreshExpiry)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessExpiry.Seconds()),
	}, nil
}

func (m *Manager) generate(userID uint64, username string, isGuest bool, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		UserID:   userID,
		Username: username,
		IsGuest:  isGuest,
		Type:     tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyAccess verifies an access token and returns its claims.
func (m *Manager) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := m.verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != "access" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh verifies a refresh token and returns its claims.
func (m *Manager) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := m.verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
