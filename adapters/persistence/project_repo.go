package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/project"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, logger logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: logger}
}

var psqlProject = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const projectColumns = "id, owner_id, kind, slug, title, description, preview, technologies, repository_url, live_url, is_public, created_at, updated_at"

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Kind,
		&p.Slug,
		&p.Title,
		&p.Description,
		&p.Preview,
		&p.Technologies,
		&p.RepositoryURL,
		&p.LiveURL,
		&p.IsPublic,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrProjectNotFound
		}
		return nil, apperror.NewInternal("failed to scan project row", err)
	}
	return p, nil
}

func scanProjects(rows pgx.Rows) ([]*project.Project, error) {
	defer rows.Close()
	projects := make([]*project.Project, 0)

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProjectRepo) Save(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.OwnerID, p.Kind, p.Slug, p.Title, p.Description, p.Preview,
		p.Technologies, p.RepositoryURL, p.LiveURL, p.IsPublic, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return apperror.NewConflict("project", "slug", p.Slug)
		}
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

func (r *postgresProjectRepo) Update(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects SET
			slug = $2, title = $3, description = $4, preview = $5, technologies = $6,
			repository_url = $7, live_url = $8, is_public = $9, updated_at = NOW()
		WHERE id = $1 AND owner_id = $10
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.ID, p.Slug, p.Title, p.Description, p.Preview, p.Technologies,
		p.RepositoryURL, p.LiveURL, p.IsPublic, p.OwnerID,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return apperror.NewConflict("project", "slug", p.Slug)
		}
		return apperror.NewInternal("failed to update project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1 AND owner_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

func (r *postgresProjectRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND owner_id = $2`
	return scanProject(r.db.QueryRow(ctx, query, id, ownerID))
}

func (r *postgresProjectRepo) listQuery(where sq.Eq, limit, offset int) (string, []interface{}, error) {
	return psqlProject.Select(projectColumns).
		From("projects").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func (r *postgresProjectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*project.Project, error) {
	sql, args, err := r.listQuery(sq.Eq{"owner_id": ownerID}, limit, offset)
	if err != nil {
		return nil, apperror.NewInternal("failed to build list by owner query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects by owner", err)
	}
	return scanProjects(rows)
}

func (r *postgresProjectRepo) ListPublicByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*project.Project, error) {
	sql, args, err := r.listQuery(sq.Eq{"owner_id": ownerID, "is_public": true}, limit, offset)
	if err != nil {
		return nil, apperror.NewInternal("failed to build public list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query public projects", err)
	}
	return scanProjects(rows)
}

func (r *postgresProjectRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM projects WHERE owner_id = $1`
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, apperror.NewInternal("failed to count projects", err)
	}
	return count, nil
}
