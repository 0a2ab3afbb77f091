// Package auth contiene el login y la creación del administrador inicial.
package auth

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
	"github.com/jhoicas/Compras-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminSeed datos del administrador creado cuando no hay usuarios.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
	log    zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("login")
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// SeedAdmin crea el administrador inicial si el repositorio de usuarios está vacío.
// Devuelve true si lo creó.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	if seed.Email == "" || seed.Password == "" {
		return false, nil
	}
	n, err := uc.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	name := seed.Name
	if name == "" {
		name = "Administrador"
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(seed.Email)),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	uc.log.Info().Str("email", user.Email).Msg("administrador inicial creado")
	return true, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
