package usecase

import (
	"leadmarket/internal/domain/account"
	"leadmarket/internal/pkg/jwt"

	"github.com/google/uuid"
)

type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, account.Role, error)
}

type jwtTokenValidator struct {
	service *jwt.Service
}

func NewTokenValidator(service *jwt.Service) TokenValidator {
	return &jwtTokenValidator{service: service}
}

func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, account.Role, error) {
	claims, err := v.service.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}

	role, err := account.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", jwt.ErrInvalidToken
	}

	return claims.UserID, role, nil
}
