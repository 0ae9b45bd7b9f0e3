package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/profile"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

const profileColumns = `owner_id, username, full_name, user_type, job_title, company, location, tagline, bio, avatar_url, profile_data, updated_at`

func (r *postgresProfileRepo) scanOne(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var profileDataBytes []byte

	err := row.Scan(
		&p.OwnerID,
		&p.Username,
		&p.FullName,
		&p.UserType,
		&p.JobTitle,
		&p.Company,
		&p.Location,
		&p.Tagline,
		&p.Bio,
		&p.AvatarURL,
		&profileDataBytes,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if err := json.Unmarshal(profileDataBytes, &p.ProfileData); err != nil {
		r.logger.Warn("Failed to unmarshal profile_data", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.ProfileData = map[string]any{}
	}
	return p, nil
}

func (r *postgresProfileRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE owner_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, ownerID))
}

func (r *postgresProfileRepo) GetByUsername(ctx context.Context, username string) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, username))
}

func (r *postgresProfileRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE username = $1)`
	if err := r.db.QueryRow(ctx, query, username).Scan(&taken); err != nil {
		return false, apperror.NewInternal("failed to check username", err)
	}
	return taken, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	profileDataBytes, err := json.Marshal(p.ProfileData)
	if err != nil {
		return apperror.NewInternal("failed to marshal profile_data", err)
	}

	query := `
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
	`
	_, err = r.db.Exec(ctx, query,
		p.OwnerID, p.Username, p.FullName, p.UserType, p.JobTitle,
		p.Company, p.Location, p.Tagline, p.Bio, profileDataBytes, p.UpdatedAt,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return apperror.NewFieldValidation("username", "This username is already taken")
		}
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) SetAvatarURL(ctx context.Context, ownerID uuid.UUID, url string) error {
	query := `UPDATE profiles SET avatar_url = $2, updated_at = NOW() WHERE owner_id = $1`
	cmdTag, err := r.db.Exec(ctx, query, ownerID, url)
	if err != nil {
		return apperror.NewInternal("failed to set avatar url", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
