package onboarding

import (
	"context"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/skill"
)

// CompletionCommand is the full unit of work derived from a finished draft.
// Everything in it is written in one transaction or not at all.
type CompletionCommand struct {
	Profile  *profile.Profile
	Activity *project.Project // nil when the draft carried no activity title
	Skills   []*skill.Skill
}

// Completer is the atomic persistence boundary behind the completion
// endpoint: upsert profile, create the optional first artifact, upsert
// skills, stamp users.onboarded_at.
type Completer interface {
	Complete(ctx context.Context, cmd CompletionCommand) error
}

// Status is what the frontend uses to resume or guard the wizard.
type Status struct {
	Completed   bool `json:"completed"`
	HasProfile  bool `json:"has_profile"`
	HasUsername bool `json:"has_username"`
	HasProjects bool `json:"has_projects"`
	HasSkills   bool `json:"has_skills"`
}
