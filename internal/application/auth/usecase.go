// Package auth registro y login de usuarios con bcrypt y JWT.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
	"github.com/jhoicas/Deme-api/pkg/config"
	"github.com/jhoicas/Deme-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	users repository.UserRepository
	cfg   config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, cfg config.JWTConfig) *UseCase {
	return &UseCase{users: users, cfg: cfg}
}

// Register crea un usuario con password hasheado. El username es único y el
// rol debe ser ADMIN u OPERATOR (por defecto OPERATOR).
func (uc *UseCase) Register(ctx context.Context, actorID string, in dto.RegisterRequest) (*entity.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son obligatorios", domain.ErrValidation)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperator
	}
	if role != entity.RoleAdmin && role != entity.RoleOperator {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrValidation, in.Role)
	}
	existing, err := uc.users.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: usuario %q", domain.ErrDuplicate, in.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Audit: entity.Audit{
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: actorID,
			UpdatedBy: actorID,
		},
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login valida credenciales y devuelve un JWT firmado.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}

	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Role, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w", domain.ErrUserNotFound)
	}
	return &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}
