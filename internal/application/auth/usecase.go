package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/jwt"
	"github.com/jhoicas/crm-api/pkg/metrics"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta el aprovisionamiento de un usuario dentro de una transacción:
// upsert del usuario y reemplazo de roles son una unidad atómica.
type TxRunner interface {
	RunProvision(ctx context.Context, fn func(users repository.UserRepository) error) error
}

// dummyHash es un hash bcrypt fijo contra el que se compara cuando el email no
// existe, para que ese camino cueste lo mismo que un password incorrecto y el
// login no filtre qué emails están registrados.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthUseCase casos de uso de autenticación: login y aprovisionamiento.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	tx        TxRunner
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, auditRepo repository.AuditRepository, tx TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, auditRepo: auditRepo, tx: tx, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y registra la entrada de auditoría.
// "Email no existe" y "password incorrecto" devuelven el mismo ErrInvalidCredentials:
// el cliente no debe poder enumerar usuarios. Si la entrada de auditoría no puede
// escribirse, el login completo falla; nunca se reporta éxito sin su registro.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	roles, err := uc.userRepo.Roles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	if err := uc.auditRepo.Record(ctx, &user.ID, entity.AuditActionLogin, map[string]any{"email": user.Email}); err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

// Provision crea o actualiza un usuario por email (upsert idempotente): si ya
// existe se reemplaza su password hash, y las asignaciones de rol se sustituyen
// por completo por los nombres suministrados que existan en el catálogo.
// Devuelve domain.ErrNoMatchingRoles si ningún nombre coincide.
func (uc *AuthUseCase) Provision(ctx context.Context, email, password string, roleNames []string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roleNames,
	}
	err = uc.tx.RunProvision(ctx, func(users repository.UserRepository) error {
		persisted, err := users.Upsert(ctx, user)
		if err != nil {
			return err
		}
		user = persisted
		user.Roles = roleNames
		return users.ReplaceRoles(ctx, user.ID, roleNames)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
