package onboarding

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
)

func studentSchema(t *testing.T) *usertype.Schema {
	t.Helper()
	schema, err := usertype.NewBuiltinRegistry().GetSchema(context.Background(), usertype.SlugStudent)
	require.NoError(t, err)
	return schema
}

func sessionAt(step Step) *Session {
	s := NewSession(uuid.New())
	s.Step = step
	return s
}

func TestNewSessionStartsAtWelcome(t *testing.T) {
	s := NewSession(uuid.New())
	assert.Equal(t, StepWelcome, s.Step)
	assert.NotEqual(t, uuid.Nil, s.ID)
}

func TestNextWalksTheFullSequence(t *testing.T) {
	schema := studentSchema(t)
	s := NewSession(uuid.New())
	s.Draft = Draft{
		UserType: usertype.SlugStudent,
		FullName: "Ada Lovelace",
		JobTitle: "CS Student",
		Username: "ada-l",
		ProfileData: map[string]any{
			"school": "University of London",
		},
		Skills: []string{"Python"},
	}

	for _, want := range []Step{StepRole, StepProfile, StepActivity, StepSkills, StepLaunch} {
		errs, err := s.Next(schema)
		require.NoError(t, err)
		require.Empty(t, errs)
		assert.Equal(t, want, s.Step)
	}

	_, err := s.Next(schema)
	assert.ErrorIs(t, err, ErrAlreadyAtEnd)
}

func TestNextBlockedWithoutRole(t *testing.T) {
	s := sessionAt(StepRole)

	errs, err := s.Next(nil)
	require.NoError(t, err)
	assert.Contains(t, errs, "user_type")
	assert.Equal(t, StepRole, s.Step, "refused transition must not move the session")
}

func TestNextBlockedOnProfileStep(t *testing.T) {
	schema := studentSchema(t)
	s := sessionAt(StepProfile)
	s.Draft.UserType = usertype.SlugStudent

	errs, err := s.Next(schema)
	require.NoError(t, err)
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "job_title")
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "school", "required schema field must be reported")
	assert.Equal(t, StepProfile, s.Step)

	s.Draft.FullName = "Ada Lovelace"
	s.Draft.JobTitle = "CS Student"
	s.Draft.Username = "Bad Username!"
	s.Draft.ProfileData = map[string]any{"school": "UCL"}

	errs, err = s.Next(schema)
	require.NoError(t, err)
	assert.Contains(t, errs, "username")
	assert.Len(t, errs, 1)
}

func TestActivityStepOnlyChecksProvidedValues(t *testing.T) {
	schema := studentSchema(t)
	s := sessionAt(StepActivity)
	s.Draft.UserType = usertype.SlugStudent

	// Nothing provided: the whole step is optional.
	errs, err := s.Next(schema)
	require.NoError(t, err)
	assert.Empty(t, errs)

	s = sessionAt(StepActivity)
	s.Draft.UserType = usertype.SlugStudent
	s.Draft.ActivityData = map[string]any{"title": 12.0}

	errs, err = s.Next(schema)
	require.NoError(t, err)
	assert.Contains(t, errs, "title")
}

func TestNextBlockedWithoutSkills(t *testing.T) {
	s := sessionAt(StepSkills)

	errs, err := s.Next(nil)
	require.NoError(t, err)
	assert.Contains(t, errs, "skills")

	s.Draft.Skills = []string{"Go"}
	errs, err = s.Next(nil)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, StepLaunch, s.Step)
}

func TestBackNeverValidates(t *testing.T) {
	s := sessionAt(StepProfile)

	// Draft is completely empty, Back must still succeed.
	require.NoError(t, s.Back())
	assert.Equal(t, StepRole, s.Step)
	require.NoError(t, s.Back())
	assert.Equal(t, StepWelcome, s.Step)

	assert.ErrorIs(t, s.Back(), ErrAlreadyAtStart)
}

func TestSkipAlwaysLandsOnLaunch(t *testing.T) {
	for _, step := range []Step{StepWelcome, StepRole, StepProfile, StepActivity, StepSkills} {
		s := sessionAt(step)
		require.NoError(t, s.Skip())
		assert.Equal(t, StepLaunch, s.Step)
		assert.True(t, s.AtLaunch())
	}

	s := sessionAt(StepLaunch)
	assert.ErrorIs(t, s.Skip(), ErrAlreadyAtEnd)
}

func TestDraftApply(t *testing.T) {
	d := Draft{
		FullName:    "Ada",
		ProfileData: map[string]any{"school": "UCL", "degree": "BSc"},
		Skills:      []string{"Python"},
	}

	name := "Ada Lovelace"
	d.Apply(Patch{
		FullName:    &name,
		ProfileData: map[string]any{"school": "Imperial"},
	})

	assert.Equal(t, "Ada Lovelace", d.FullName)
	assert.Equal(t, "Imperial", d.ProfileData["school"])
	assert.Equal(t, "BSc", d.ProfileData["degree"], "untouched keys survive a merge")
	assert.Equal(t, []string{"Python"}, d.Skills, "nil skills leaves the list alone")

	d.Apply(Patch{Skills: []string{"Go", "SQL"}})
	assert.Equal(t, []string{"Go", "SQL"}, d.Skills, "non-nil skills replaces wholesale")

	var empty Draft
	empty.Apply(Patch{ActivityData: map[string]any{"title": "Grade Tracker"}})
	assert.Equal(t, "Grade Tracker", empty.ActivityTitle())
}

func TestDraftActivityAccessors(t *testing.T) {
	d := Draft{ActivityData: map[string]any{
		"title":        "Grade Tracker",
		"description":  "Tracks grades",
		"technologies": []any{"React", "Firebase"},
	}}

	assert.Equal(t, "Grade Tracker", d.ActivityTitle())
	assert.Equal(t, "Tracks grades", d.ActivityDescription())
	assert.Equal(t, []string{"React", "Firebase"}, d.ActivityTechnologies())

	d.ActivityData["technologies"] = []string{"Go"}
	assert.Equal(t, []string{"Go"}, d.ActivityTechnologies())

	var empty Draft
	assert.Equal(t, "", empty.ActivityTitle())
	assert.Nil(t, empty.ActivityTechnologies())
}
