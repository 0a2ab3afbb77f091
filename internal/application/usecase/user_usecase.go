package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// Me devuelve el usuario del token.
func (uc *UserUseCase) Me(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrUserNotFound, actor.ID)
	}
	return entityToUserResponse(user), nil
}

// Create registra un usuario nuevo (solo admin). El email no distingue mayúsculas.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede crear usuarios", domain.ErrForbidden)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if existing, err := uc.repo.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: el email %s ya está registrado", domain.ErrDuplicate, email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Str("by", actor.ID).Msg("usuario creado")
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
