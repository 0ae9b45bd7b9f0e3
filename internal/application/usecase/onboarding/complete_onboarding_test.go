package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charlesbasis/portfolio-app-sub000/adapters/event"
	domainonboarding "github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type fakeCompleter struct {
	cmd    *domainonboarding.CompletionCommand
	err    error
	called int
}

func (f *fakeCompleter) Complete(_ context.Context, cmd domainonboarding.CompletionCommand) error {
	f.called++
	f.cmd = &cmd
	return f.err
}

type fakeStore struct {
	deleted []uuid.UUID
	err     error
}

func (f *fakeStore) Get(_ context.Context, _ uuid.UUID) (*domainonboarding.Session, error) {
	return nil, domainonboarding.ErrSessionNotFound
}
func (f *fakeStore) Save(_ context.Context, _ *domainonboarding.Session) error { return nil }
func (f *fakeStore) Delete(_ context.Context, ownerID uuid.UUID) error {
	f.deleted = append(f.deleted, ownerID)
	return f.err
}

type fakePublisher struct {
	payloads []event.OnboardingEventPayload
	err      error
}

func (f *fakePublisher) PublishOnboardingCompleted(_ context.Context, payload event.OnboardingEventPayload) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

func newCompleteFixture() (*CompleteOnboardingUseCase, *fakeCompleter, *fakeStore, *fakePublisher) {
	completer := &fakeCompleter{}
	store := &fakeStore{}
	publisher := &fakePublisher{}
	uc := NewCompleteOnboardingUseCase(completer, usertype.NewBuiltinRegistry(), store, publisher, logger.NewNop())
	return uc, completer, store, publisher
}

func studentDraft() domainonboarding.Draft {
	return domainonboarding.Draft{
		UserType: usertype.SlugStudent,
		FullName: "Ada Lovelace",
		Username: "Ada-L",
		JobTitle: "CS Student",
		ProfileData: map[string]any{
			"school": "University of London",
		},
		ActivityData: map[string]any{
			"title":        "Grade Tracker",
			"description":  "Tracks course grades over a semester",
			"technologies": []any{"React", "Firebase"},
		},
		Skills: []string{"Python", "Git", "Python"},
	}
}

func TestComplete_Student(t *testing.T) {
	uc, completer, store, publisher := newCompleteFixture()
	ownerID := uuid.New()

	output, err := uc.Execute(context.Background(), CompleteInput{OwnerID: ownerID, Draft: studentDraft()})
	require.NoError(t, err)
	require.Equal(t, 1, completer.called)

	cmd := completer.cmd
	assert.Equal(t, "ada-l", cmd.Profile.Username, "username is normalized before the write")
	assert.Equal(t, "Ada Lovelace", cmd.Profile.FullName)
	assert.Equal(t, usertype.SlugStudent, cmd.Profile.UserType)

	require.NotNil(t, cmd.Activity)
	assert.Equal(t, project.KindProject, cmd.Activity.Kind)
	assert.Equal(t, "grade-tracker", cmd.Activity.Slug)
	assert.Equal(t, []string{"React", "Firebase"}, cmd.Activity.Technologies)
	assert.True(t, cmd.Activity.IsPublic)
	assert.NotEmpty(t, cmd.Activity.Preview)

	require.Len(t, cmd.Skills, 2, "duplicate skill names collapse to one row")
	for _, s := range cmd.Skills {
		assert.Equal(t, skill.DefaultProficiency, s.Proficiency)
		assert.Equal(t, ownerID, s.OwnerID)
	}

	assert.Equal(t, "/portfolio/ada-l", output.PortfolioURL)
	assert.Equal(t, []uuid.UUID{ownerID}, store.deleted, "draft session is discarded after commit")
	require.Len(t, publisher.payloads, 1)
	assert.Equal(t, event.EventOnboardingCompleted, publisher.payloads[0].EventType)
	assert.Equal(t, "ada-l", publisher.payloads[0].Username)
}

func TestComplete_TeacherArtifactIsResource(t *testing.T) {
	uc, completer, _, _ := newCompleteFixture()

	draft := studentDraft()
	draft.UserType = usertype.SlugTeacher
	draft.ActivityData = map[string]any{"title": "Intro to Algebra Worksheets"}

	_, err := uc.Execute(context.Background(), CompleteInput{OwnerID: uuid.New(), Draft: draft})
	require.NoError(t, err)
	require.NotNil(t, completer.cmd.Activity)
	assert.Equal(t, project.KindResource, completer.cmd.Activity.Kind)
}

func TestComplete_NoActivityTitleMeansNoArtifact(t *testing.T) {
	uc, completer, _, _ := newCompleteFixture()

	draft := studentDraft()
	draft.ActivityData = map[string]any{"description": "only a description"}

	output, err := uc.Execute(context.Background(), CompleteInput{OwnerID: uuid.New(), Draft: draft})
	require.NoError(t, err)
	assert.Nil(t, completer.cmd.Activity)
	assert.Nil(t, output.Project)
}

func TestComplete_MissingFieldsCollectedIntoOne422(t *testing.T) {
	uc, completer, _, _ := newCompleteFixture()

	draft := domainonboarding.Draft{UserType: "astronaut"}
	_, err := uc.Execute(context.Background(), CompleteInput{OwnerID: uuid.New(), Draft: draft})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "full_name")
	assert.Contains(t, appErr.Fields, "username")
	assert.Contains(t, appErr.Fields, "user_type")
	assert.Equal(t, 0, completer.called, "nothing may be written when validation fails")
}

func TestComplete_InvalidUsername(t *testing.T) {
	uc, _, _, _ := newCompleteFixture()

	draft := studentDraft()
	draft.Username = "Ada L!"

	_, err := uc.Execute(context.Background(), CompleteInput{OwnerID: uuid.New(), Draft: draft})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "username")
}

func TestComplete_UnsluggableTitle(t *testing.T) {
	uc, completer, _, _ := newCompleteFixture()

	draft := studentDraft()
	draft.ActivityData = map[string]any{"title": "!!!"}

	_, err := uc.Execute(context.Background(), CompleteInput{OwnerID: uuid.New(), Draft: draft})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "first_project.title")
	assert.Equal(t, 0, completer.called)
}

func TestComplete_CompleterErrorPropagates(t *testing.T) {
	uc, completer, store, publisher := newCompleteFixture()
	completer.err = errors.New("tx failed")

	_, err := uc.Execute(context.Background(), CompleteInput{OwnerID: uuid.New(), Draft: studentDraft()})
	require.Error(t, err)
	assert.Empty(t, store.deleted, "session survives a failed completion for retry")
	assert.Empty(t, publisher.payloads)
}

func TestComplete_PublishFailureDoesNotFailRequest(t *testing.T) {
	uc, _, _, publisher := newCompleteFixture()
	publisher.err = errors.New("kafka down")

	output, err := uc.Execute(context.Background(), CompleteInput{OwnerID: uuid.New(), Draft: studentDraft()})
	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestComplete_StoreDeleteFailureDoesNotFailRequest(t *testing.T) {
	uc, _, store, _ := newCompleteFixture()
	store.err = errors.New("redis down")

	_, err := uc.Execute(context.Background(), CompleteInput{OwnerID: uuid.New(), Draft: studentDraft()})
	require.NoError(t, err)
}
