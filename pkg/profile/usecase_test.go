package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozyrev/devconnect/pkg/auth"
	"github.com/dkozyrev/devconnect/pkg/post"
	"github.com/dkozyrev/devconnect/pkg/profile"
	"github.com/dkozyrev/devconnect/pkg/repository/memory"
)

func newService(t *testing.T) (profile.UseCase, *memory.UserRepository, *memory.PostRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	posts := memory.NewPostRepository()
	return profile.NewService(memory.NewProfileRepository(), posts, users), users, posts
}

func seedUser(t *testing.T, users *memory.UserRepository) auth.User {
	t.Helper()
	u := auth.User{ID: uuid.New(), Name: "Alice", Email: "a@x.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestSplitSkills(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"go", "sql", "docker"}, profile.SplitSkills("go, sql,  docker"))
	assert.Empty(t, profile.SplitSkills(" , ,"))
}

func TestSave_CreateThenUpdateKeepsHistory(t *testing.T) {
	t.Parallel()
	svc, users, _ := newService(t)
	ctx := context.Background()
	u := seedUser(t, users)

	p, err := svc.Save(ctx, u.ID, profile.Input{Status: "Developer", Skills: []string{"go"}})
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)

	p, err = svc.AddExperience(ctx, u.ID, profile.Experience{Title: "Engineer", Company: "Acme", From: time.Now()})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)

	// A profile update must not wipe accumulated experience.
	p, err = svc.Save(ctx, u.ID, profile.Input{Status: "Senior Developer", Skills: []string{"go", "sql"}})
	require.NoError(t, err)
	assert.Equal(t, "Senior Developer", p.Status)
	assert.Len(t, p.Experience, 1)
}

func TestMe_NoProfile(t *testing.T) {
	t.Parallel()
	svc, users, _ := newService(t)
	u := seedUser(t, users)

	_, err := svc.Me(context.Background(), u.ID)
	assert.ErrorIs(t, err, profile.ErrNotFound)
}

func TestExperienceAddRemove_NewestFirst(t *testing.T) {
	t.Parallel()
	svc, users, _ := newService(t)
	ctx := context.Background()
	u := seedUser(t, users)

	_, err := svc.Save(ctx, u.ID, profile.Input{Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)

	p, err := svc.AddExperience(ctx, u.ID, profile.Experience{Title: "First", Company: "A", From: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	p, err = svc.AddExperience(ctx, u.ID, profile.Experience{Title: "Second", Company: "B", From: time.Now()})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Second", p.Experience[0].Title)

	p, err = svc.RemoveExperience(ctx, u.ID, p.Experience[0].ID)
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "First", p.Experience[0].Title)
}

// Removing an entry must not rewrite the backing array a prior snapshot of
// the profile still points at.
func TestRemoveExperience_DoesNotMutateSnapshots(t *testing.T) {
	t.Parallel()
	svc, users, _ := newService(t)
	ctx := context.Background()
	u := seedUser(t, users)

	_, err := svc.Save(ctx, u.ID, profile.Input{Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)
	_, err = svc.AddExperience(ctx, u.ID, profile.Experience{Title: "First", Company: "A", From: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	_, err = svc.AddExperience(ctx, u.ID, profile.Experience{Title: "Second", Company: "B", From: time.Now()})
	require.NoError(t, err)

	before, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, before.Experience, 2)

	_, err = svc.RemoveExperience(ctx, u.ID, before.Experience[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "Second", before.Experience[0].Title)
	assert.Equal(t, "First", before.Experience[1].Title)
}

func TestEducationAddRemove(t *testing.T) {
	t.Parallel()
	svc, users, _ := newService(t)
	ctx := context.Background()
	u := seedUser(t, users)

	_, err := svc.Save(ctx, u.ID, profile.Input{Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)

	p, err := svc.AddEducation(ctx, u.ID, profile.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: time.Now()})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = svc.RemoveEducation(ctx, u.ID, p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	t.Parallel()
	svc, users, posts := newService(t)
	ctx := context.Background()
	u := seedUser(t, users)

	_, err := svc.Save(ctx, u.ID, profile.Input{Status: "Dev", Skills: []string{"go"}})
	require.NoError(t, err)
	require.NoError(t, posts.Create(ctx, post.Post{
		ID:        uuid.New(),
		UserID:    u.ID,
		Text:      "to be removed",
		CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, svc.DeleteAccount(ctx, u.ID))

	_, err = users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, auth.ErrNotFound)
	_, err = svc.Me(ctx, u.ID)
	assert.ErrorIs(t, err, profile.ErrNotFound)
	remaining, err := posts.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
