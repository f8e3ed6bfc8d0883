package post

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dkozyrev/devconnect/pkg/auth"
)

// UseCase covers the post feed: publishing, likes and comments.
type UseCase interface {
	Create(ctx context.Context, authorID uuid.UUID, text string) (Post, error)
	List(ctx context.Context, limit, offset int) ([]Post, error)
	Get(ctx context.Context, id uuid.UUID) (Post, error)
	Delete(ctx context.Context, actorID, postID uuid.UUID) error
	Like(ctx context.Context, actorID, postID uuid.UUID) ([]Like, error)
	Unlike(ctx context.Context, actorID, postID uuid.UUID) ([]Like, error)
	AddComment(ctx context.Context, actorID, postID uuid.UUID, text string) ([]Comment, error)
	RemoveComment(ctx context.Context, actorID, postID, commentID uuid.UUID) ([]Comment, error)
}

type service struct {
	repo  Repository
	users auth.UserRepository
}

func NewService(repo Repository, users auth.UserRepository) UseCase {
	return &service{repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, text string) (Post, error) {
	user, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return Post{}, err
	}
	p := Post{
		ID:        uuid.New(),
		UserID:    user.ID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Likes:     []Like{},
		Comments:  []Comment{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Post, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorID, postID uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(actorID, p.UserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, postID)
}

func (s *service) Like(ctx context.Context, actorID, postID uuid.UUID) ([]Like, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, l := range p.Likes {
		if l.UserID == actorID {
			return nil, ErrAlreadyLiked
		}
	}
	p.Likes = append(p.Likes, Like{UserID: actorID})
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func (s *service) Unlike(ctx context.Context, actorID, postID uuid.UUID) ([]Like, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	// Build a fresh slice; compacting in place would mutate the backing array
	// shared with whatever the repository returned before Update commits.
	kept := make([]Like, 0, len(p.Likes))
	found := false
	for _, l := range p.Likes {
		if l.UserID == actorID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return nil, ErrNotLiked
	}
	p.Likes = kept
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

func (s *service) AddComment(ctx context.Context, actorID, postID uuid.UUID, text string) ([]Comment, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	c := Comment{
		ID:        uuid.New(),
		UserID:    user.ID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

func (s *service) RemoveComment(ctx context.Context, actorID, postID, commentID uuid.UUID) ([]Comment, error) {
	p, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, c := range p.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCommentNotFound
	}
	if err := auth.Authorize(actorID, p.Comments[idx].UserID); err != nil {
		return nil, err
	}
	kept := make([]Comment, 0, len(p.Comments)-1)
	kept = append(kept, p.Comments[:idx]...)
	kept = append(kept, p.Comments[idx+1:]...)
	p.Comments = kept
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}
