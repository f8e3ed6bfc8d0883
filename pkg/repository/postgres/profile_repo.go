package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkozyrev/devconnect/pkg/profile"
)

// ProfileRepository implements profile.Repository backed by PostgreSQL.
// Skills, social links, experience and education are embedded documents in
// the source data model, so they are stored as JSONB columns rather than
// joined tables.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profiles (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	status TEXT NOT NULL,
	skills JSONB NOT NULL DEFAULT '[]',
	company TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	github_username TEXT NOT NULL DEFAULT '',
	social JSONB NOT NULL DEFAULT '{}',
	experience JSONB NOT NULL DEFAULT '[]',
	education JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return profile.Profile{}, err
	}
	social, err := json.Marshal(p.Social)
	if err != nil {
		return profile.Profile{}, err
	}
	experience, err := json.Marshal(p.Experience)
	if err != nil {
		return profile.Profile{}, err
	}
	education, err := json.Marshal(p.Education)
	if err != nil {
		return profile.Profile{}, err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO profiles (id, user_id, status, skills, company, website, location, bio, github_username, social, experience, education, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (user_id) DO UPDATE SET
	status = EXCLUDED.status,
	skills = EXCLUDED.skills,
	company = EXCLUDED.company,
	website = EXCLUDED.website,
	location = EXCLUDED.location,
	bio = EXCLUDED.bio,
	github_username = EXCLUDED.github_username,
	social = EXCLUDED.social,
	experience = EXCLUDED.experience,
	education = EXCLUDED.education
`, p.ID, p.UserID, p.Status, skills, p.Company, p.Website, p.Location, p.Bio, p.GithubUsername, social, experience, education, p.CreatedAt)
	if err != nil {
		return profile.Profile{}, err
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, status, skills, company, website, location, bio, github_username, social, experience, education, created_at
FROM profiles WHERE user_id = $1
`, userID)
	return scanProfile(row)
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, status, skills, company, website, location, bio, github_username, social, experience, education, created_at
FROM profiles ORDER BY created_at DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var (
		p          profile.Profile
		skills     []byte
		social     []byte
		experience []byte
		education  []byte
		createdAt  time.Time
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Status, &skills, &p.Company, &p.Website, &p.Location, &p.Bio, &p.GithubUsername, &social, &experience, &education, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return profile.Profile{}, err
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		return profile.Profile{}, err
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return profile.Profile{}, err
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return profile.Profile{}, err
	}
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
