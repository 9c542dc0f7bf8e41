package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers bad signatures, expired tokens and type mismatches
var ErrInvalidToken = errors.New("invalid token")

const (
	// TypeAccess authorizes general API calls
	TypeAccess = "access"
	// TypeRefresh authorizes only minting new access tokens
	TypeRefresh = "refresh"
)

// Claims are the signed contents of an issued token
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed access and refresh tokens
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService initializes a token service with the signing secret and lifetimes
func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess signs a new access token for the subject
func (s *Service) IssueAccess(subject string) (string, error) {
	return s.issue(subject, TypeAccess, s.accessTTL)
}

// IssueRefresh signs a new refresh token for the subject
func (s *Service) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, TypeRefresh, s.refreshTTL)
}

func (s *Service) issue(subject, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyAccess validates an access token and returns its subject
func (s *Service) VerifyAccess(tokenString string) (string, error) {
	return s.verify(tokenString, TypeAccess)
}

// VerifyRefresh validates a refresh token and returns its subject
func (s *Service) VerifyRefresh(tokenString string) (string, error) {
	return s.verify(tokenString, TypeRefresh)
}

func (s *Service) verify(tokenString, wantType string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	if claims.Type != wantType {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
