package usecase_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria sobre los puertos del dominio
// ──────────────────────────────────────────────────────────────────────────────

type fakeLeadRepo struct {
	leads map[string]*entity.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: map[string]*entity.Lead{}}
}

func (r *fakeLeadRepo) List(_ context.Context, limit int) ([]entity.Lead, error) {
	var out []entity.Lead
	for _, l := range r.leads {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeLeadRepo) Create(_ context.Context, lead *entity.Lead) error {
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) UpdatePartial(_ context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	l, ok := r.leads[id]
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

type auditEntry struct {
	actorID  *string
	action   string
	metadata map[string]any
}

type fakeAuditRepo struct {
	entries []auditEntry
	failErr error // si no es nil, Record falla
}

func (r *fakeAuditRepo) Record(_ context.Context, actorID *string, action string, metadata map[string]any) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.entries = append(r.entries, auditEntry{actorID: actorID, action: action, metadata: metadata})
	return nil
}

// fakeTx ejecuta el callback directo sobre los fakes, sin transacción real.
type fakeTx struct {
	leads *fakeLeadRepo
	audit *fakeAuditRepo
}

func (f fakeTx) Run(_ context.Context, fn func(repository.LeadRepository, repository.AuditRepository) error) error {
	return fn(f.leads, f.audit)
}

func buildLeadUC() (*usecase.LeadUseCase, *fakeLeadRepo, *fakeAuditRepo) {
	leads := newFakeLeadRepo()
	audit := &fakeAuditRepo{}
	return usecase.NewLeadUseCase(leads, fakeTx{leads: leads, audit: audit}), leads, audit
}

const actorID = "00000000-0000-0000-0000-0000000000aa"

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadCreate_StatusPorDefectoEsNew(t *testing.T) {
	uc, leads, audit := buildLeadUC()

	out, err := uc.Create(context.Background(), actorID, dto.CreateLeadRequest{
		Name:  "Jane Doe",
		Email: "jane@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusNew, out.Status, "status omitido debe normalizarse a New")
	require.Len(t, leads.leads, 1)

	// El actor queda como dueño
	stored := leads.leads[out.ID]
	require.NotNil(t, stored.OwnerID)
	assert.Equal(t, actorID, *stored.OwnerID)

	// Auditoría: exactamente una entrada create_lead atribuida al actor
	require.Len(t, audit.entries, 1)
	assert.Equal(t, entity.AuditActionCreateLead, audit.entries[0].action)
	require.NotNil(t, audit.entries[0].actorID)
	assert.Equal(t, actorID, *audit.entries[0].actorID)
	assert.Equal(t, out.ID, audit.entries[0].metadata["lead_id"])
}

func TestLeadCreate_FalloDeAuditoriaFallaLaOperacion(t *testing.T) {
	uc, _, audit := buildLeadUC()
	audit.failErr = errors.New("audit insert failed")

	_, err := uc.Create(context.Background(), actorID, dto.CreateLeadRequest{
		Name:  "Jane Doe",
		Email: "jane@x.com",
	})
	assert.Error(t, err, "sin entrada de auditoría la operación no puede reportarse exitosa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadUpdate_ParcheVacio_ErrNoUpdates(t *testing.T) {
	uc, leads, audit := buildLeadUC()
	created, err := uc.Create(context.Background(), actorID, dto.CreateLeadRequest{Name: "Jane", Email: "jane@x.com"})
	require.NoError(t, err)
	before := *leads.leads[created.ID]

	_, err = uc.Update(context.Background(), actorID, created.ID, entity.LeadPatch{})
	assert.ErrorIs(t, err, domain.ErrNoUpdates)

	assert.Equal(t, before, *leads.leads[created.ID], "ningún campo debe cambiar")
	assert.Len(t, audit.entries, 1, "solo la entrada del create, nada del update fallido")
}

func TestLeadUpdate_LeadInexistente_SinAuditoria(t *testing.T) {
	uc, _, audit := buildLeadUC()

	status := entity.StatusConverted
	_, err := uc.Update(context.Background(), actorID, "no-such-id", entity.LeadPatch{Status: &status})
	assert.ErrorIs(t, err, domain.ErrLeadNotFound)
	assert.Empty(t, audit.entries, "un update fallido no escribe auditoría")
}

func TestLeadUpdate_ParcheDisperso(t *testing.T) {
	uc, leads, audit := buildLeadUC()
	phone := "555-0101"
	created, err := uc.Create(context.Background(), actorID, dto.CreateLeadRequest{
		Name: "Jane", Email: "jane@x.com", Phone: &phone,
	})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond) // updated_at estrictamente mayor

	// phone presente con null → NULL; name/email no vienen → intactos
	status := entity.StatusConverted
	out, err := uc.Update(context.Background(), actorID, created.ID, entity.LeadPatch{
		Status:   &status,
		Phone:    nil,
		PhoneSet: true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConverted, out.Status)
	assert.Nil(t, out.Phone, "phone presente con null debe escribirse como NULL")
	assert.Equal(t, "Jane", out.Name, "campos ausentes quedan intactos")
	assert.Equal(t, "jane@x.com", out.Email)
	assert.True(t, out.UpdatedAt.After(created.UpdatedAt), "updated_at debe refrescarse")

	stored := leads.leads[created.ID]
	assert.Nil(t, stored.Phone)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, entity.AuditActionUpdateLead, audit.entries[1].action)
	assert.Equal(t, created.ID, audit.entries[1].metadata["lead_id"])
}

func TestLeadList_OrdenadoPorActualizacionDescendente(t *testing.T) {
	uc, _, _ := buildLeadUC()
	a, err := uc.Create(context.Background(), actorID, dto.CreateLeadRequest{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	b, err := uc.Create(context.Background(), actorID, dto.CreateLeadRequest{Name: "B", Email: "b@x.com"})
	require.NoError(t, err)

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Leads, 2)
	assert.Equal(t, b.ID, out.Leads[0].ID, "el más recientemente actualizado va primero")
	assert.Equal(t, a.ID, out.Leads[1].ID)

	// Tocar A lo sube al frente
	time.Sleep(2 * time.Millisecond)
	notes := "seguimiento"
	_, err = uc.Update(context.Background(), actorID, a.ID, entity.LeadPatch{Notes: &notes, NotesSet: true})
	require.NoError(t, err)

	out, err = uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a.ID, out.Leads[0].ID)
}
