package persistence

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/usertype"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

// catalogField is the wire shape of one field in the user_types table.
// Rules arrive as a pipe-delimited string ("required|min:3|max:50") and are
// parsed into structured constraints on load.
type catalogField struct {
	Name        string            `json:"name"`
	Label       string            `json:"label"`
	Type        string            `json:"type"`
	Placeholder string            `json:"placeholder"`
	Description string            `json:"description"`
	Options     []usertype.Option `json:"options"`
	Rules       string            `json:"rules"`
}

func (f catalogField) toSpec() usertype.FieldSpec {
	rules, required := usertype.ParseRules(f.Rules)
	return usertype.FieldSpec{
		Name:        f.Name,
		Label:       f.Label,
		Type:        usertype.FieldType(f.Type),
		Required:    required,
		Placeholder: f.Placeholder,
		Description: f.Description,
		Options:     f.Options,
		Rules:       rules,
	}
}

// postgresUserTypeRegistry loads the role catalog from the user_types table
// once per process. A single failed or invalid load permanently flips it to
// the compiled-in catalog; there is no retry.
type postgresUserTypeRegistry struct {
	db       *pgxpool.Pool
	logger   logger.Logger
	fallback *usertype.BuiltinRegistry

	once     sync.Once
	fellBack bool
	bySlug   map[string]*usertype.Schema
	order    []*usertype.Schema
}

func NewPostgresUserTypeRegistry(db *pgxpool.Pool, logger logger.Logger) usertype.Registry {
	return &postgresUserTypeRegistry{
		db:       db,
		logger:   logger,
		fallback: usertype.NewBuiltinRegistry(),
	}
}

func (r *postgresUserTypeRegistry) load(ctx context.Context) {
	rows, err := r.db.Query(ctx, `
		SELECT slug, label, description, activity_label, profile_fields, activity_fields, skill_tiers
		FROM user_types
		ORDER BY position ASC
	`)
	if err != nil {
		r.logger.Warn("User type catalog unavailable, serving built-in schemas", zap.Error(err))
		r.fellBack = true
		return
	}
	defer rows.Close()

	bySlug := map[string]*usertype.Schema{}
	order := []*usertype.Schema{}

	for rows.Next() {
		var s usertype.Schema
		var profileBytes, activityBytes, tierBytes []byte
		var profileFields, activityFields []catalogField
		if err := rows.Scan(&s.Slug, &s.Label, &s.Description, &s.ActivityLabel, &profileBytes, &activityBytes, &tierBytes); err != nil {
			r.logger.Warn("Failed to scan user type row, serving built-in schemas", zap.Error(err))
			r.fellBack = true
			return
		}
		if err := json.Unmarshal(profileBytes, &profileFields); err != nil {
			r.logger.Warn("Bad profile_fields in catalog, serving built-in schemas", zap.String("slug", s.Slug), zap.Error(err))
			r.fellBack = true
			return
		}
		if err := json.Unmarshal(activityBytes, &activityFields); err != nil {
			r.logger.Warn("Bad activity_fields in catalog, serving built-in schemas", zap.String("slug", s.Slug), zap.Error(err))
			r.fellBack = true
			return
		}
		if err := json.Unmarshal(tierBytes, &s.SkillTiers); err != nil {
			r.logger.Warn("Bad skill_tiers in catalog, serving built-in schemas", zap.String("slug", s.Slug), zap.Error(err))
			r.fellBack = true
			return
		}

		s.ProfileFields = make([]usertype.FieldSpec, len(profileFields))
		for i, f := range profileFields {
			s.ProfileFields[i] = f.toSpec()
		}
		s.ActivityFields = make([]usertype.FieldSpec, len(activityFields))
		for i, f := range activityFields {
			s.ActivityFields[i] = f.toSpec()
		}

		if err := s.Validate(); err != nil {
			r.logger.Warn("Invalid schema in catalog, serving built-in schemas", zap.String("slug", s.Slug), zap.Error(err))
			r.fellBack = true
			return
		}

		schema := s
		bySlug[schema.Slug] = &schema
		order = append(order, &schema)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("Error iterating user type catalog, serving built-in schemas", zap.Error(err))
		r.fellBack = true
		return
	}
	if len(order) == 0 {
		r.logger.Warn("User type catalog is empty, serving built-in schemas")
		r.fellBack = true
		return
	}

	r.bySlug = bySlug
	r.order = order
}

func (r *postgresUserTypeRegistry) GetSchema(ctx context.Context, slug string) (*usertype.Schema, error) {
	r.once.Do(func() { r.load(ctx) })

	if r.fellBack {
		return r.fallback.GetSchema(ctx, slug)
	}
	s, ok := r.bySlug[slug]
	if !ok {
		return nil, usertype.ErrUnknownUserType
	}
	return s, nil
}

func (r *postgresUserTypeRegistry) List(ctx context.Context) ([]*usertype.Schema, error) {
	r.once.Do(func() { r.load(ctx) })

	if r.fellBack {
		return r.fallback.List(ctx)
	}
	return r.order, nil
}
