package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
)

// Authenticator valida os JWTs do Supabase Auth e emite tokens de serviço para o CLI
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	IssueToken(subject, email, role string, ttl time.Duration) (string, error)
}

type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		secret: []byte(cfg.Auth.JWTSecret),
		now:    time.Now,
	}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if len(s.secret) == 0 {
		return nil, NewAuthError(ErrSecretNotConfigured, apiErrors.ErrInternalServer, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}
	if claims.Role == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "claim role ausente")
	}

	return claims, nil
}

// IssueToken assina um token HS256 no formato do Supabase; usado pelo crmctl e pelos testes
func (s *Service) IssueToken(subject, email, role string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", NewAuthError(ErrSecretNotConfigured, apiErrors.ErrInternalServer, "")
	}

	now := s.now()
	claims := &domain.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
