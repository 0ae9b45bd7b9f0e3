package http

import (
	"time"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
	"github.com/Charlesbasis/portfolio-app-sub000/internal/wizard"
)

// Profile DTOs

type ProfileDTO struct {
	Username    string         `json:"username"`
	FullName    string         `json:"full_name"`
	UserType    string         `json:"user_type"`
	JobTitle    string         `json:"job_title"`
	Company     string         `json:"company,omitempty"`
	Location    string         `json:"location,omitempty"`
	Tagline     string         `json:"tagline,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	AvatarURL   *string        `json:"avatar_url,omitempty"`
	ProfileData map[string]any `json:"profile_data"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type UpdateProfileRequest struct {
	FullName    string         `json:"full_name" binding:"required"`
	JobTitle    string         `json:"job_title"`
	Company     string         `json:"company"`
	Location    string         `json:"location"`
	Tagline     string         `json:"tagline"`
	Bio         string         `json:"bio"`
	ProfileData map[string]any `json:"profile_data"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	data := p.ProfileData
	if data == nil {
		data = map[string]any{}
	}
	return ProfileDTO{
		Username:    p.Username,
		FullName:    p.FullName,
		UserType:    p.UserType,
		JobTitle:    p.JobTitle,
		Company:     p.Company,
		Location:    p.Location,
		Tagline:     p.Tagline,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		ProfileData: data,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Project DTOs

type CreateProjectRequest struct {
	Kind          string   `json:"kind"`
	Title         string   `json:"title" binding:"required"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies"`
	RepositoryURL *string  `json:"repository_url"`
	LiveURL       *string  `json:"live_url"`
	IsPublic      bool     `json:"is_public"`
}

type UpdateProjectRequest struct {
	Title         string   `json:"title" binding:"required"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies"`
	RepositoryURL *string  `json:"repository_url"`
	LiveURL       *string  `json:"live_url"`
	IsPublic      bool     `json:"is_public"`
}

type ProjectSummaryDTO struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Preview      string    `json:"preview"`
	Technologies []string  `json:"technologies"`
	IsPublic     bool      `json:"is_public"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProjectDTO struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Preview       string    `json:"preview"`
	Technologies  []string  `json:"technologies"`
	RepositoryURL *string   `json:"repository_url"`
	LiveURL       *string   `json:"live_url"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToProjectDTO(p *project.Project) ProjectDTO {
	return ProjectDTO{
		ID:            p.ID.String(),
		Kind:          string(p.Kind),
		Slug:          p.Slug,
		Title:         p.Title,
		Description:   p.Description,
		Preview:       p.Preview,
		Technologies:  p.Technologies,
		RepositoryURL: p.RepositoryURL,
		LiveURL:       p.LiveURL,
		IsPublic:      p.IsPublic,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToProjectSummaryDTO(p *project.Project) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ID:           p.ID.String(),
		Kind:         string(p.Kind),
		Slug:         p.Slug,
		Title:        p.Title,
		Preview:      p.Preview,
		Technologies: p.Technologies,
		IsPublic:     p.IsPublic,
		UpdatedAt:    p.UpdatedAt,
	}
}

// Skill DTOs

type SkillDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Proficiency int    `json:"proficiency"`
}

type CreateOrUpdateSkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Proficiency int    `json:"proficiency"`
}

func ToSkillDTO(s *skill.Skill) SkillDTO {
	return SkillDTO{
		ID:          s.ID.String(),
		Name:        s.Name,
		Proficiency: s.Proficiency,
	}
}

func ToSkillDTOs(skills []*skill.Skill) []SkillDTO {
	dtos := make([]SkillDTO, len(skills))
	for i, s := range skills {
		dtos[i] = ToSkillDTO(s)
	}
	return dtos
}

// User type DTOs

type UserTypeSummaryDTO struct {
	Slug        string `json:"slug"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type UserTypeDTO struct {
	Slug            string              `json:"slug"`
	Label           string              `json:"label"`
	Description     string              `json:"description"`
	ActivityLabel   string              `json:"activity_label"`
	ProfileWidgets  []wizard.Widget     `json:"profile_widgets"`
	ActivityWidgets []wizard.Widget     `json:"activity_widgets"`
	SkillTiers      usertype.SkillTiers `json:"skill_tiers"`
}

func ToUserTypeSummaryDTO(s *usertype.Schema) UserTypeSummaryDTO {
	return UserTypeSummaryDTO{
		Slug:        s.Slug,
		Label:       s.Label,
		Description: s.Description,
	}
}

func ToUserTypeDTO(s *usertype.Schema) UserTypeDTO {
	return UserTypeDTO{
		Slug:            s.Slug,
		Label:           s.Label,
		Description:     s.Description,
		ActivityLabel:   s.ActivityLabel,
		ProfileWidgets:  wizard.WidgetsFor(s.ProfileFields),
		ActivityWidgets: wizard.WidgetsFor(s.ActivityFields),
		SkillTiers:      s.SkillTiers,
	}
}

// Onboarding session DTOs

type SessionDTO struct {
	ID        string           `json:"id"`
	Step      string           `json:"step"`
	Steps     []string         `json:"steps"`
	Draft     onboarding.Draft `json:"draft"`
	UserType  *UserTypeDTO     `json:"user_type,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func ToSessionDTO(s *onboarding.Session, schema *usertype.Schema) SessionDTO {
	steps := onboarding.Steps()
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = string(step)
	}

	dto := SessionDTO{
		ID:        s.ID.String(),
		Step:      string(s.Step),
		Steps:     names,
		Draft:     s.Draft,
		UpdatedAt: s.UpdatedAt,
	}
	if schema != nil {
		ut := ToUserTypeDTO(schema)
		dto.UserType = &ut
	}
	return dto
}

type PatchSessionRequest struct {
	UserType     *string        `json:"user_type"`
	FullName     *string        `json:"full_name"`
	Username     *string        `json:"username"`
	JobTitle     *string        `json:"job_title"`
	Company      *string        `json:"company"`
	Location     *string        `json:"location"`
	Tagline      *string        `json:"tagline"`
	Bio          *string        `json:"bio"`
	ProfileData  map[string]any `json:"profile_data"`
	ActivityData map[string]any `json:"activity_data"`
	Skills       []string       `json:"skills"`
}

func (r *PatchSessionRequest) ToDomainPatch() onboarding.Patch {
	return onboarding.Patch{
		UserType:     r.UserType,
		FullName:     r.FullName,
		Username:     r.Username,
		JobTitle:     r.JobTitle,
		Company:      r.Company,
		Location:     r.Location,
		Tagline:      r.Tagline,
		Bio:          r.Bio,
		ProfileData:  r.ProfileData,
		ActivityData: r.ActivityData,
		Skills:       r.Skills,
	}
}

type AdvanceSessionRequest struct {
	Action string `json:"action" binding:"required,oneof=next back skip"`
}

// Completion DTOs

type FirstProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// CompleteOnboardingRequest is the final payload; required-field checks live
// in the use case so missing answers come back as a 422 field map, not a 400.
type CompleteOnboardingRequest struct {
	UserType     string               `json:"user_type"`
	FullName     string               `json:"full_name"`
	Username     string               `json:"username"`
	JobTitle     string               `json:"job_title"`
	Company      string               `json:"company"`
	Location     string               `json:"location"`
	Tagline      string               `json:"tagline"`
	Bio          string               `json:"bio"`
	ProfileData  map[string]any       `json:"profile_data"`
	FirstProject *FirstProjectRequest `json:"first_project"`
	Skills       []string             `json:"skills"`
}

func (r *CompleteOnboardingRequest) ToDomainDraft() onboarding.Draft {
	draft := onboarding.Draft{
		UserType:    r.UserType,
		FullName:    r.FullName,
		Username:    r.Username,
		JobTitle:    r.JobTitle,
		Company:     r.Company,
		Location:    r.Location,
		Tagline:     r.Tagline,
		Bio:         r.Bio,
		ProfileData: r.ProfileData,
		Skills:      r.Skills,
	}
	if r.FirstProject != nil && r.FirstProject.Title != "" {
		draft.ActivityData = map[string]any{
			"title":       r.FirstProject.Title,
			"description": r.FirstProject.Description,
		}
		if r.FirstProject.Technologies != nil {
			draft.ActivityData["technologies"] = r.FirstProject.Technologies
		}
	}
	return draft
}

type OnboardingStatusDTO struct {
	Completed   bool `json:"completed"`
	HasProfile  bool `json:"has_profile"`
	HasUsername bool `json:"has_username"`
	HasProjects bool `json:"has_projects"`
	HasSkills   bool `json:"has_skills"`
}

func ToStatusDTO(s onboarding.Status) OnboardingStatusDTO {
	return OnboardingStatusDTO{
		Completed:   s.Completed,
		HasProfile:  s.HasProfile,
		HasUsername: s.HasUsername,
		HasProjects: s.HasProjects,
		HasSkills:   s.HasSkills,
	}
}

// Portfolio DTOs

type PortfolioDTO struct {
	Profile  ProfileDTO          `json:"profile"`
	Projects []ProjectSummaryDTO `json:"projects"`
	Skills   []SkillDTO          `json:"skills"`
}
