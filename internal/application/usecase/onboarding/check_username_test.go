package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type fakeProfileRepo struct {
	profile.Repository
	taken      map[string]bool
	takenCalls int
	err        error
}

func (f *fakeProfileRepo) UsernameTaken(_ context.Context, username string) (bool, error) {
	f.takenCalls++
	if f.err != nil {
		return false, f.err
	}
	return f.taken[username], nil
}

type fakeAvailabilityCache struct {
	entries  map[string]bool
	getErr   error
	setErr   error
	setCalls int
}

func (f *fakeAvailabilityCache) Get(_ context.Context, username string) (bool, bool, error) {
	if f.getErr != nil {
		return false, false, f.getErr
	}
	available, hit := f.entries[username]
	return available, hit, nil
}

func (f *fakeAvailabilityCache) Set(_ context.Context, username string, available bool) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	if f.entries == nil {
		f.entries = map[string]bool{}
	}
	f.entries[username] = available
	return nil
}

func TestCheckUsername_RejectsBeforeStorage(t *testing.T) {
	repo := &fakeProfileRepo{}
	uc := NewCheckUsernameUseCase(repo, nil, logger.NewNop())

	for _, candidate := range []string{"ab", "", "Ada L!", "ada.l"} {
		_, err := uc.Execute(context.Background(), CheckUsernameInput{Candidate: candidate})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr, candidate)
		assert.Contains(t, appErr.Fields, "username")
	}
	assert.Equal(t, 0, repo.takenCalls, "invalid candidates never reach the repository")
}

func TestCheckUsername_CacheHitSkipsRepo(t *testing.T) {
	repo := &fakeProfileRepo{}
	cache := &fakeAvailabilityCache{entries: map[string]bool{"ada-l": false}}
	uc := NewCheckUsernameUseCase(repo, cache, logger.NewNop())

	output, err := uc.Execute(context.Background(), CheckUsernameInput{Candidate: "Ada-L"})
	require.NoError(t, err)
	assert.False(t, output.Available)
	assert.Equal(t, "ada-l", output.Username)
	assert.Equal(t, 0, repo.takenCalls)
}

func TestCheckUsername_MissConsultsRepoAndFillsCache(t *testing.T) {
	repo := &fakeProfileRepo{taken: map[string]bool{"taken-name": true}}
	cache := &fakeAvailabilityCache{}
	uc := NewCheckUsernameUseCase(repo, cache, logger.NewNop())

	output, err := uc.Execute(context.Background(), CheckUsernameInput{Candidate: "free-name"})
	require.NoError(t, err)
	assert.True(t, output.Available)
	assert.Equal(t, 1, repo.takenCalls)
	assert.Equal(t, 1, cache.setCalls)

	output, err = uc.Execute(context.Background(), CheckUsernameInput{Candidate: "taken-name"})
	require.NoError(t, err)
	assert.False(t, output.Available)
}

func TestCheckUsername_CacheFailuresFallThrough(t *testing.T) {
	repo := &fakeProfileRepo{}
	cache := &fakeAvailabilityCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	uc := NewCheckUsernameUseCase(repo, cache, logger.NewNop())

	output, err := uc.Execute(context.Background(), CheckUsernameInput{Candidate: "ada-l"})
	require.NoError(t, err, "a broken cache must not break the check")
	assert.True(t, output.Available)
	assert.Equal(t, 1, repo.takenCalls)
}

func TestCheckUsername_RepoErrorPropagates(t *testing.T) {
	repo := &fakeProfileRepo{err: errors.New("db down")}
	uc := NewCheckUsernameUseCase(repo, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), CheckUsernameInput{Candidate: "ada-l"})
	assert.Error(t, err)
}
