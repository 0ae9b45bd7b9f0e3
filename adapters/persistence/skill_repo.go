package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/skill"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

var psqlSkill = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresSkillRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*skill.Skill, error) {
	sql, args, err := psqlSkill.Select("id, owner_id, name, proficiency, created_at").
		From("skills").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list skills query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills", err)
	}
	defer rows.Close()

	skills := make([]*skill.Skill, 0)
	for rows.Next() {
		s := &skill.Skill{}
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Proficiency, &s.CreatedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan skill", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skills", err)
	}
	return skills, nil
}

func (r *postgresSkillRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM skills WHERE owner_id = $1`
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, apperror.NewInternal("failed to count skills", err)
	}
	return count, nil
}

func (r *postgresSkillRepo) Create(ctx context.Context, s *skill.Skill) error {
	// Upsert by (owner, name): re-adding an existing skill is a no-op rather
	// than a duplicate row.
	query := `
		INSERT INTO skills (id, owner_id, name, proficiency, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner_id, name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, s.ID, s.OwnerID, s.Name, s.Proficiency, s.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to insert skill", err)
	}
	return nil
}

func (r *postgresSkillRepo) Update(ctx context.Context, s *skill.Skill) error {
	query := `UPDATE skills SET name = $3, proficiency = $4 WHERE id = $1 AND owner_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, s.ID, s.OwnerID, s.Name, s.Proficiency)
	if err != nil {
		return apperror.NewInternal("failed to update skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return skill.ErrSkillNotFound
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `DELETE FROM skills WHERE id = $1 AND owner_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return skill.ErrSkillNotFound
	}
	return nil
}
