package persistence

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

// postgresCompletionRepo is the single place that needs a transaction: the
// four completion writes either all land or none do.
type postgresCompletionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCompletionRepo(db *pgxpool.Pool, logger logger.Logger) onboarding.Completer {
	return &postgresCompletionRepo{db: db, logger: logger}
}

func (r *postgresCompletionRepo) Complete(ctx context.Context, cmd onboarding.CompletionCommand) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin completion transaction", err)
	}
	defer tx.Rollback(ctx)

	p := cmd.Profile
	profileDataBytes, err := json.Marshal(p.ProfileData)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile_data", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (owner_id, username, full_name, user_type, job_title, company, location, tagline, bio, profile_data, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (owner_id) DO UPDATE SET
			username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			user_type = EXCLUDED.user_type,
			job_title = EXCLUDED.job_title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			tagline = EXCLUDED.tagline,
			bio = EXCLUDED.bio,
			profile_data = EXCLUDED.profile_data,
			updated_at = NOW()
	`, p.OwnerID, p.Username, p.FullName, p.UserType, p.JobTitle,
		p.Company, p.Location, p.Tagline, p.Bio, profileDataBytes, p.UpdatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return apperror.NewFieldValidation("username", "This username is already taken")
		}
		return apperror.NewInternal("failed to upsert profile", err)
	}

	if a := cmd.Activity; a != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO projects (id, owner_id, kind, slug, title, description, preview, technologies, repository_url, live_url, is_public, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, a.ID, a.OwnerID, a.Kind, a.Slug, a.Title, a.Description, a.Preview,
			a.Technologies, a.RepositoryURL, a.LiveURL, a.IsPublic, a.CreatedAt, a.UpdatedAt)
		if err != nil {
			if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
				return apperror.NewFieldValidation("first_project.title", "You already have a project with this title")
			}
			return apperror.NewInternal("failed to create first project", err)
		}
	}

	for _, s := range cmd.Skills {
		_, err = tx.Exec(ctx, `
			INSERT INTO skills (id, owner_id, name, proficiency, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (owner_id, name) DO NOTHING
		`, s.ID, s.OwnerID, s.Name, s.Proficiency, s.CreatedAt)
		if err != nil {
			return apperror.NewInternal("failed to insert skill", err)
		}
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE users SET onboarded_at = NOW() WHERE id = $1`, p.OwnerID)
	if err != nil {
		return apperror.NewInternal("failed to mark user onboarded", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", p.OwnerID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit completion transaction", err)
	}

	r.logger.Info("Onboarding completion committed",
		zap.String("owner_id", p.OwnerID.String()),
		zap.String("username", p.Username),
		zap.Int("skills", len(cmd.Skills)),
		zap.Bool("with_activity", cmd.Activity != nil),
	)
	return nil
}
