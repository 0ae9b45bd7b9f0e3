package onboarding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainonboarding "github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type memStore struct {
	sessions map[uuid.UUID]*domainonboarding.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: map[uuid.UUID]*domainonboarding.Session{}}
}

func (m *memStore) Get(_ context.Context, ownerID uuid.UUID) (*domainonboarding.Session, error) {
	s, ok := m.sessions[ownerID]
	if !ok {
		return nil, domainonboarding.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memStore) Save(_ context.Context, session *domainonboarding.Session) error {
	copied := *session
	m.sessions[session.OwnerID] = &copied
	return nil
}

func (m *memStore) Delete(_ context.Context, ownerID uuid.UUID) error {
	delete(m.sessions, ownerID)
	return nil
}

func newSessionFixture() (*SessionUseCase, *memStore) {
	store := newMemStore()
	return NewSessionUseCase(store, usertype.NewBuiltinRegistry(), logger.NewNop()), store
}

func strp(s string) *string { return &s }

func TestSessionStart_IsIdempotent(t *testing.T) {
	uc, _ := newSessionFixture()
	ownerID := uuid.New()
	ctx := context.Background()

	first, err := uc.ExecuteStart(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, domainonboarding.StepWelcome, first.Session.Step)
	assert.Nil(t, first.Schema)

	again, err := uc.ExecuteStart(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, first.Session.ID, again.Session.ID, "starting twice resumes the same session")
}

func TestSessionPatch_MergesAndResolvesSchema(t *testing.T) {
	uc, _ := newSessionFixture()
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteStart(ctx, ownerID)
	require.NoError(t, err)

	output, err := uc.ExecutePatch(ctx, PatchInput{
		OwnerID: ownerID,
		Patch:   domainonboarding.Patch{UserType: strp(usertype.SlugStudent)},
	})
	require.NoError(t, err)
	require.NotNil(t, output.Schema)
	assert.Equal(t, usertype.SlugStudent, output.Schema.Slug)

	output, err = uc.ExecutePatch(ctx, PatchInput{
		OwnerID: ownerID,
		Patch:   domainonboarding.Patch{FullName: strp("Ada Lovelace")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", output.Session.Draft.FullName)
	assert.Equal(t, usertype.SlugStudent, output.Session.Draft.UserType, "earlier answers survive later patches")
}

func TestSessionPatch_RejectsUnknownUserType(t *testing.T) {
	uc, _ := newSessionFixture()
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteStart(ctx, ownerID)
	require.NoError(t, err)

	_, err = uc.ExecutePatch(ctx, PatchInput{
		OwnerID: ownerID,
		Patch:   domainonboarding.Patch{UserType: strp("astronaut")},
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "user_type")
}

func TestSessionAdvance_NextRefusalKeepsStepAndReportsFields(t *testing.T) {
	uc, store := newSessionFixture()
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteStart(ctx, ownerID)
	require.NoError(t, err)

	// welcome -> role needs nothing.
	output, err := uc.ExecuteAdvance(ctx, AdvanceInput{OwnerID: ownerID, Action: ActionNext})
	require.NoError(t, err)
	assert.Empty(t, output.FieldErrors)
	assert.Equal(t, domainonboarding.StepRole, output.Session.Step)

	// role -> profile refused without a chosen role.
	output, err = uc.ExecuteAdvance(ctx, AdvanceInput{OwnerID: ownerID, Action: ActionNext})
	require.NoError(t, err)
	assert.Contains(t, output.FieldErrors, "user_type")
	assert.Equal(t, domainonboarding.StepRole, output.Session.Step)

	persisted, err := store.Get(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, domainonboarding.StepRole, persisted.Step, "refused advance is not persisted as a move")
}

func TestSessionAdvance_SkipJumpsToLaunch(t *testing.T) {
	uc, _ := newSessionFixture()
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteStart(ctx, ownerID)
	require.NoError(t, err)

	output, err := uc.ExecuteAdvance(ctx, AdvanceInput{OwnerID: ownerID, Action: ActionSkip})
	require.NoError(t, err)
	assert.Empty(t, output.FieldErrors)
	assert.Equal(t, domainonboarding.StepLaunch, output.Session.Step)
}

func TestSessionAdvance_UnknownAction(t *testing.T) {
	uc, _ := newSessionFixture()
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := uc.ExecuteStart(ctx, ownerID)
	require.NoError(t, err)

	_, err = uc.ExecuteAdvance(ctx, AdvanceInput{OwnerID: ownerID, Action: AdvanceAction("sideways")})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestSessionGet_NotFound(t *testing.T) {
	uc, _ := newSessionFixture()

	_, err := uc.ExecuteGet(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainonboarding.ErrSessionNotFound)
}
