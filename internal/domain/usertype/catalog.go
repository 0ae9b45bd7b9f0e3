package usertype

import "context"

// Compiled-in catalog. This is the fallback served when the user_types table
// cannot be loaded, and the seed data the table is populated from. The slug
// set is closed: code that switches on roles can rely on exactly these four.

const (
	SlugStudent      = "student"
	SlugTeacher      = "teacher"
	SlugProfessional = "professional"
	SlugFreelancer   = "freelancer"
)

func fptr(v float64) *float64 { return &v }

func builtinSchemas() []*Schema {
	return []*Schema{
		{
			Slug:          SlugStudent,
			Label:         "Student",
			Description:   "Showcase coursework, projects and the skills you are building.",
			ActivityLabel: "Your first project",
			ProfileFields: []FieldSpec{
				{Name: "school", Label: "School", Type: TypeText, Required: true, Placeholder: "University of Somewhere", Rules: Rules{Max: fptr(100)}},
				{Name: "degree", Label: "Degree / Program", Type: TypeText, Placeholder: "BSc Computer Science", Rules: Rules{Max: fptr(100)}},
				{Name: "graduation_year", Label: "Graduation year", Type: TypeNumber, Rules: Rules{Min: fptr(1950), Max: fptr(2100)}},
			},
			ActivityFields: []FieldSpec{
				{Name: "title", Label: "Project title", Type: TypeText, Placeholder: "Grade Tracker", Rules: Rules{Max: fptr(120)}},
				{Name: "description", Label: "What does it do?", Type: TypeTextarea},
				{Name: "technologies", Label: "Technologies used", Type: TypeArray, Rules: Rules{Max: fptr(10)}},
			},
			SkillTiers: SkillTiers{
				Primary:   []string{"JavaScript", "Python", "HTML/CSS"},
				Secondary: []string{"Git", "SQL", "React"},
				Suggested: []string{"TypeScript", "Java", "C++", "Figma"},
			},
		},
		{
			Slug:          SlugTeacher,
			Label:         "Teacher",
			Description:   "Share teaching materials and your academic background.",
			ActivityLabel: "Your first teaching resource",
			ProfileFields: []FieldSpec{
				{Name: "institution", Label: "Institution", Type: TypeText, Required: true, Rules: Rules{Max: fptr(100)}},
				{Name: "subject", Label: "Subject area", Type: TypeText, Required: true, Rules: Rules{Max: fptr(100)}},
				{Name: "years_teaching", Label: "Years teaching", Type: TypeNumber, Rules: Rules{Min: fptr(0), Max: fptr(60)}},
			},
			ActivityFields: []FieldSpec{
				{Name: "title", Label: "Resource title", Type: TypeText, Rules: Rules{Max: fptr(120)}},
				{Name: "description", Label: "Describe the resource", Type: TypeTextarea},
				{Name: "level", Label: "Intended level", Type: TypeSelect, Options: []Option{
					{Value: "primary", Label: "Primary"},
					{Value: "secondary", Label: "Secondary"},
					{Value: "undergraduate", Label: "Undergraduate"},
					{Value: "postgraduate", Label: "Postgraduate"},
				}},
			},
			SkillTiers: SkillTiers{
				Primary:   []string{"Curriculum Design", "Lesson Planning", "Assessment"},
				Secondary: []string{"Public Speaking", "Mentoring", "E-Learning"},
				Suggested: []string{"Moodle", "Google Classroom", "Research", "Grant Writing"},
			},
		},
		{
			Slug:          SlugProfessional,
			Label:         "Professional",
			Description:   "Present your career, employers and key achievements.",
			ActivityLabel: "A project you are proud of",
			ProfileFields: []FieldSpec{
				{Name: "industry", Label: "Industry", Type: TypeSelect, Required: true, Options: []Option{
					{Value: "software", Label: "Software"},
					{Value: "design", Label: "Design"},
					{Value: "marketing", Label: "Marketing"},
					{Value: "finance", Label: "Finance"},
					{Value: "other", Label: "Other"},
				}},
				{Name: "years_experience", Label: "Years of experience", Type: TypeNumber, Rules: Rules{Min: fptr(0), Max: fptr(60)}},
				{Name: "linkedin_url", Label: "LinkedIn", Type: TypeURL},
			},
			ActivityFields: []FieldSpec{
				{Name: "title", Label: "Project title", Type: TypeText, Rules: Rules{Max: fptr(120)}},
				{Name: "description", Label: "Describe your role and impact", Type: TypeTextarea},
				{Name: "technologies", Label: "Tools and technologies", Type: TypeArray, Rules: Rules{Max: fptr(10)}},
			},
			SkillTiers: SkillTiers{
				Primary:   []string{"Project Management", "Communication", "Leadership"},
				Secondary: []string{"Agile", "Data Analysis", "Stakeholder Management"},
				Suggested: []string{"Jira", "SQL", "Excel", "Negotiation"},
			},
		},
		{
			Slug:          SlugFreelancer,
			Label:         "Freelancer",
			Description:   "Win clients with your services, rates and past work.",
			ActivityLabel: "A recent client project",
			ProfileFields: []FieldSpec{
				{Name: "specialty", Label: "Specialty", Type: TypeText, Required: true, Placeholder: "Full-stack web development", Rules: Rules{Max: fptr(100)}},
				{Name: "hourly_rate", Label: "Hourly rate (USD)", Type: TypeNumber, Rules: Rules{Min: fptr(1), Max: fptr(10000)}},
				{Name: "availability", Label: "Availability", Type: TypeSelect, Options: []Option{
					{Value: "full_time", Label: "Full time"},
					{Value: "part_time", Label: "Part time"},
					{Value: "occasional", Label: "Occasional"},
				}},
				{Name: "website", Label: "Website", Type: TypeURL},
			},
			ActivityFields: []FieldSpec{
				{Name: "title", Label: "Project title", Type: TypeText, Rules: Rules{Max: fptr(120)}},
				{Name: "description", Label: "What did you deliver?", Type: TypeTextarea},
				{Name: "technologies", Label: "Stack", Type: TypeArray, Rules: Rules{Max: fptr(10)}},
			},
			SkillTiers: SkillTiers{
				Primary:   []string{"Client Communication", "Time Management", "Proposal Writing"},
				Secondary: []string{"Web Development", "Branding", "SEO"},
				Suggested: []string{"WordPress", "Shopify", "Invoicing", "Copywriting"},
			},
		},
	}
}

// BuiltinRegistry serves the compiled-in catalog. It is both the fallback
// behind the DB-backed registry and a convenient registry for tests.
type BuiltinRegistry struct {
	bySlug map[string]*Schema
	order  []*Schema
}

func NewBuiltinRegistry() *BuiltinRegistry {
	schemas := builtinSchemas()
	r := &BuiltinRegistry{bySlug: make(map[string]*Schema, len(schemas)), order: schemas}
	for _, s := range schemas {
		r.bySlug[s.Slug] = s
	}
	return r
}

func (r *BuiltinRegistry) get(slug string) (*Schema, error) {
	s, ok := r.bySlug[slug]
	if !ok {
		return nil, ErrUnknownUserType
	}
	return s, nil
}

// GetSchema implements Registry without touching any backend.
func (r *BuiltinRegistry) GetSchema(_ context.Context, slug string) (*Schema, error) {
	return r.get(slug)
}

func (r *BuiltinRegistry) List(_ context.Context) ([]*Schema, error) {
	return r.order, nil
}
