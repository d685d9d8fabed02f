package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	apphttp "github.com/jhoicas/crm-api/internal/interfaces/http"
)

const testSecret = "test-secret-key-for-unit-tests"

// ──────────────────────────────────────────────────────────────────────────────
// memStore: fake en memoria que implementa los tres puertos de persistencia y
// los dos tx runners; un solo campo de estado por tabla, como la DB real.
// ──────────────────────────────────────────────────────────────────────────────

type auditEntry struct {
	actorID  *string
	action   string
	metadata map[string]any
}

type memStore struct {
	users  map[string]*entity.User
	leads  map[string]*entity.Lead
	audits []auditEntry
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*entity.User{}, leads: map[string]*entity.Lead{}}
}

// addUser siembra un usuario con password bcrypt y roles dados; devuelve su id.
func (s *memStore) addUser(t *testing.T, email, password string, roles ...string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id := "user-" + email
	s.users[id] = &entity.User{ID: id, Email: email, PasswordHash: string(hash), Roles: roles}
	return id
}

// UserRepository

func (s *memStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindWithRoles(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) Roles(_ context.Context, userID string) ([]string, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return u.Roles, nil
}

func (s *memStore) Upsert(_ context.Context, user *entity.User) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			u.PasswordHash = user.PasswordHash
			cp := *u
			return &cp, nil
		}
	}
	cp := *user
	cp.Roles = nil
	s.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memStore) ReplaceRoles(_ context.Context, userID string, roleNames []string) error {
	valid := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		switch name {
		case entity.RoleAdmin, entity.RoleSales, entity.RoleService, entity.RoleCustomer, entity.RoleStoreManager:
			valid = append(valid, name)
		}
	}
	if len(valid) == 0 {
		return domain.ErrNoMatchingRoles
	}
	s.users[userID].Roles = valid
	return nil
}

// LeadRepository

func (s *memStore) List(_ context.Context, limit int) ([]entity.Lead, error) {
	var out []entity.Lead
	for _, l := range s.leads {
		cp := *l
		if cp.OwnerID != nil {
			if owner, ok := s.users[*cp.OwnerID]; ok {
				email := owner.Email
				cp.OwnerEmail = &email
			}
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, lead *entity.Lead) error {
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	cp := *lead
	s.leads[lead.ID] = &cp
	return nil
}

func (s *memStore) UpdatePartial(_ context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	l, ok := s.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Email != nil {
		l.Email = *patch.Email
	}
	if patch.Status != nil {
		l.Status = *patch.Status
	}
	if patch.PhoneSet {
		l.Phone = patch.Phone
	}
	if patch.NotesSet {
		l.Notes = patch.Notes
	}
	l.UpdatedAt = time.Now()
	cp := *l
	return &cp, nil
}

// AuditRepository

func (s *memStore) Record(_ context.Context, actorID *string, action string, metadata map[string]any) error {
	s.audits = append(s.audits, auditEntry{actorID: actorID, action: action, metadata: metadata})
	return nil
}

// TxRunners (sin transacción real; el orden de llamadas preserva la semántica)

func (s *memStore) Run(_ context.Context, fn func(repository.LeadRepository, repository.AuditRepository) error) error {
	return fn(s, s)
}

func (s *memStore) RunProvision(_ context.Context, fn func(repository.UserRepository) error) error {
	return fn(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test: mismo cableado que cmd/api, con el memStore como persistencia
// ──────────────────────────────────────────────────────────────────────────────

func buildApp(store *memStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(recover.New())

	authUC := auth.NewAuthUseCase(store, store, store, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 480,
		Issuer:     "crm-api-test",
	})
	leadUC := usecase.NewLeadUseCase(store, store)

	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		LeadUC:    leadUC,
		UserRepo:  store,
		JWTSecret: testSecret,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON opcional y token bearer opcional.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody decodifica el cuerpo JSON de la respuesta en un mapa genérico.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// loginToken hace login y devuelve el token emitido.
func loginToken(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
