package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase covers profile maintenance and the account-deletion cascade.
type UseCase interface {
	Save(ctx context.Context, userID uuid.UUID, in Input) (Profile, error)
	Me(ctx context.Context, userID uuid.UUID) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	AddExperience(ctx context.Context, userID uuid.UUID, exp Experience) (Profile, error)
	RemoveExperience(ctx context.Context, userID, expID uuid.UUID) (Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, edu Education) (Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) (Profile, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// Input carries the editable profile fields. Skills may arrive as a single
// comma-separated string from the client; SplitSkills normalizes that form.
type Input struct {
	Status         string
	Skills         []string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Social         Social
}

// SplitSkills turns "go, sql,  docker" into ["go" "sql" "docker"].
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// PostPurger removes all posts belonging to a user. Satisfied by the post
// repository; declared here so the account-deletion cascade does not import
// the post package.
type PostPurger interface {
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// AccountRemover deletes the user record itself.
type AccountRemover interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	posts    PostPurger
	accounts AccountRemover
}

func NewService(repo Repository, posts PostPurger, accounts AccountRemover) UseCase {
	return &service{repo: repo, posts: posts, accounts: accounts}
}

func (s *service) Save(ctx context.Context, userID uuid.UUID, in Input) (Profile, error) {
	existing, err := s.repo.GetByUserID(ctx, userID)
	p := Profile{
		ID:             uuid.New(),
		UserID:         userID,
		Status:         in.Status,
		Skills:         in.Skills,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social:         in.Social,
		Experience:     []Experience{},
		Education:      []Education{},
		CreatedAt:      time.Now().UTC(),
	}
	if err == nil {
		// Update keeps identity and the accumulated experience/education.
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		p.Experience = existing.Experience
		p.Education = existing.Education
	}
	return s.repo.Upsert(ctx, p)
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

func (s *service) AddExperience(ctx context.Context, userID uuid.UUID, exp Experience) (Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	exp.ID = uuid.New()
	// Newest entries first, matching the feed ordering users expect.
	p.Experience = append([]Experience{exp}, p.Experience...)
	return s.repo.Upsert(ctx, p)
}

func (s *service) RemoveExperience(ctx context.Context, userID, expID uuid.UUID) (Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	kept := make([]Experience, 0, len(p.Experience))
	for _, e := range p.Experience {
		if e.ID != expID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
	return s.repo.Upsert(ctx, p)
}

func (s *service) AddEducation(ctx context.Context, userID uuid.UUID, edu Education) (Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	edu.ID = uuid.New()
	p.Education = append([]Education{edu}, p.Education...)
	return s.repo.Upsert(ctx, p)
}

func (s *service) RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) (Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	kept := make([]Education, 0, len(p.Education))
	for _, e := range p.Education {
		if e.ID != eduID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
	return s.repo.Upsert(ctx, p)
}

// DeleteAccount removes the user's posts, profile and account, in that order.
func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.posts.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.accounts.Delete(ctx, userID)
}
