package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozyrev/devconnect/pkg/client/api"
)

type fakeAPI struct {
	loginToken string
	loginErr   error
	user       api.User
	loadErr    error

	loadGate    chan struct{} // when set, LoadUser blocks until closed
	loadStarted chan struct{} // when set, closed once LoadUser has begun
	seenLoad    []string
}

func (f *fakeAPI) Register(_ context.Context, _, _, _ string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAPI) LoadUser(_ context.Context, token string) (api.User, error) {
	f.seenLoad = append(f.seenLoad, token)
	if f.loadStarted != nil {
		close(f.loadStarted)
	}
	if f.loadGate != nil {
		<-f.loadGate
	}
	return f.user, f.loadErr
}

type memStore struct {
	token  string
	saves  int
	clears int
	errSav error
}

func (s *memStore) Load() (string, error) { return s.token, nil }

func (s *memStore) Save(token string) error {
	if s.errSav != nil {
		return s.errSav
	}
	s.token = token
	s.saves++
	return nil
}

func (s *memStore) Clear() error {
	s.token = ""
	s.clears++
	return nil
}

func TestManager_StartsLoading(t *testing.T) {
	t.Parallel()

	m, err := NewManager(&fakeAPI{}, &memStore{token: "persisted"}, nil)
	require.NoError(t, err)

	st := m.State()
	assert.True(t, st.Loading)
	assert.False(t, st.Authenticated)
	assert.Equal(t, "persisted", m.Token())
}

func TestManager_LoadUserFailureSettlesUnauthenticated(t *testing.T) {
	t.Parallel()

	client := &fakeAPI{loadErr: errors.New("token rejected")}
	m, err := NewManager(client, &memStore{token: "stale"}, nil)
	require.NoError(t, err)

	m.LoadUser(context.Background())

	st := m.State()
	assert.False(t, st.Loading)
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
}

func TestManager_LoadUserWithoutTokenSkipsAPI(t *testing.T) {
	t.Parallel()

	client := &fakeAPI{user: api.User{Name: "Alice"}}
	m, err := NewManager(client, &memStore{}, nil)
	require.NoError(t, err)

	m.LoadUser(context.Background())

	st := m.State()
	assert.False(t, st.Loading)
	assert.False(t, st.Authenticated)
	assert.Empty(t, client.seenLoad, "no token, no round-trip")
}

func TestManager_LoginPersistsTokenAndLoadsUser(t *testing.T) {
	t.Parallel()

	client := &fakeAPI{
		loginToken: "fresh-token",
		user:       api.User{Name: "Alice", Email: "a@x.com"},
	}
	store := &memStore{}
	m, err := NewManager(client, store, nil)
	require.NoError(t, err)

	require.NoError(t, m.Login(context.Background(), "a@x.com", "secret1"))

	assert.Equal(t, "fresh-token", store.token)
	assert.Equal(t, 1, store.saves)
	st := m.State()
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "Alice", st.User.Name)
	assert.Equal(t, []string{"fresh-token"}, client.seenLoad)
}

func TestManager_LoginFailureAlertsAndKeepsState(t *testing.T) {
	t.Parallel()

	client := &fakeAPI{loginErr: &api.APIError{
		Status:   401,
		Messages: []string{"Invalid credentials"},
	}}
	var alerts []string
	m, err := NewManager(client, &memStore{}, func(msg string) { alerts = append(alerts, msg) })
	require.NoError(t, err)

	err = m.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, []string{"Invalid credentials"}, alerts)
	assert.True(t, m.State().Loading)
	assert.Empty(t, m.Token())
}

func TestManager_SaveFailureKeepsOldToken(t *testing.T) {
	t.Parallel()

	client := &fakeAPI{loginToken: "fresh"}
	store := &memStore{errSav: errors.New("disk full")}
	m, err := NewManager(client, store, nil)
	require.NoError(t, err)

	err = m.Login(context.Background(), "a@x.com", "secret1")
	require.Error(t, err)
	assert.Empty(t, m.Token())
	assert.Empty(t, client.seenLoad)
}

func TestManager_LogoutWinsOverStaleLoad(t *testing.T) {
	t.Parallel()

	client := &fakeAPI{
		user:        api.User{Name: "Alice"},
		loadGate:    make(chan struct{}),
		loadStarted: make(chan struct{}),
	}
	store := &memStore{token: "old-token"}
	m, err := NewManager(client, store, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.LoadUser(context.Background())
	}()

	// Wait until the identity load has snapshotted its token, log out while
	// it is still in flight, then let it finish.
	<-client.loadStarted
	require.NoError(t, m.Logout())
	close(client.loadGate)
	<-done

	st := m.State()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
	assert.Empty(t, m.Token())
	assert.Equal(t, 1, store.clears)
}
