package project

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugFromTitle(t *testing.T) {
	assert.Equal(t, "grade-tracker", SlugFromTitle("Grade Tracker"))
	assert.Equal(t, "my-cool-app", SlugFromTitle("  My   Cool!! App  "))
	assert.Equal(t, "v2-rewrite", SlugFromTitle("V2: Rewrite"))
	assert.Equal(t, "", SlugFromTitle("!!!"))
	assert.Equal(t, "hello-world", SlugFromTitle("hello-world"))
}

func TestPreviewOf(t *testing.T) {
	assert.Equal(t, "short text", PreviewOf("short text"))
	assert.Equal(t, "", PreviewOf(""))

	long := strings.Repeat("a", DescriptionPreviewLen+50)
	preview := PreviewOf(long)
	assert.Equal(t, DescriptionPreviewLen+1, len([]rune(preview)))
	assert.True(t, strings.HasSuffix(preview, "…"))
}

func TestProjectValidate(t *testing.T) {
	valid := &Project{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Kind:    KindProject,
		Slug:    "grade-tracker",
		Title:   "Grade Tracker",
	}
	assert.NoError(t, valid.Validate())

	badSlug := *valid
	badSlug.Slug = "Grade Tracker"
	assert.ErrorIs(t, badSlug.Validate(), ErrInvalidSlug)

	emptySlug := *valid
	emptySlug.Slug = ""
	assert.ErrorIs(t, emptySlug.Validate(), ErrInvalidSlug)
}
