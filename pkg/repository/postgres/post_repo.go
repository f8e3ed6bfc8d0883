package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkozyrev/devconnect/pkg/post"
)

// PostRepository implements post.Repository backed by PostgreSQL. Likes and
// comments travel with the post as JSONB, mirroring the embedded arrays of
// the source data model.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) (*PostRepository, error) {
	r := &PostRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS posts (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	name TEXT NOT NULL,
	avatar TEXT NOT NULL DEFAULT '',
	likes JSONB NOT NULL DEFAULT '[]',
	comments JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_user ON posts(user_id);
CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC);
`)
	return err
}

func (r *PostRepository) Create(ctx context.Context, p post.Post) error {
	likes, err := json.Marshal(p.Likes)
	if err != nil {
		return err
	}
	comments, err := json.Marshal(p.Comments)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO posts (id, user_id, text, name, avatar, likes, comments, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, p.ID, p.UserID, p.Text, p.Name, p.Avatar, likes, comments, p.CreatedAt)
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (post.Post, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, text, name, avatar, likes, comments, created_at
FROM posts WHERE id = $1
`, id)
	return scanPost(row)
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]post.Post, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, text, name, avatar, likes, comments, created_at
FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]post.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, p post.Post) error {
	likes, err := json.Marshal(p.Likes)
	if err != nil {
		return err
	}
	comments, err := json.Marshal(p.Comments)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE posts SET text = $2, likes = $3, comments = $4 WHERE id = $1
`, p.ID, p.Text, likes, comments)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID)
	return err
}

func scanPost(row pgx.Row) (post.Post, error) {
	var (
		p         post.Post
		likes     []byte
		comments  []byte
		createdAt time.Time
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &likes, &comments, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}
	if err := json.Unmarshal(likes, &p.Likes); err != nil {
		return post.Post{}, err
	}
	if err := json.Unmarshal(comments, &p.Comments); err != nil {
		return post.Post{}, err
	}
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
