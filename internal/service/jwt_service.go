package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	InterviewerID uuid.UUID `json:"interviewer_id"`
	Email         string    `json:"email"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewJWTService(cfg *config.AuthConfig) (*JWTService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	hours := cfg.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	return &JWTService{
		secret:     []byte(cfg.JWTSecret),
		expiration: time.Duration(hours) * time.Hour,
		now:        time.Now,
	}, nil
}

func (s *JWTService) GenerateToken(interviewerID uuid.UUID, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		InterviewerID: interviewerID,
		Email:         email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   interviewerID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errs.Unauthorized("missing token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, errs.Unauthorized("token expired")
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, errs.Unauthorized("malformed token")
		default:
			return nil, errs.Unauthorized("invalid token")
		}
	}
	if !token.Valid {
		return nil, errs.Unauthorized("invalid token")
	}
	return claims, nil
}
