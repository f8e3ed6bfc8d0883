// Package session mirrors the server's authentication verdict on the client:
// a process-wide state machine of {authenticated, loading, user} plus the
// persisted token that feeds it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dkozyrev/devconnect/pkg/client/api"
)

// State is the client's view of the current session. It starts in
// {Authenticated:false, Loading:true} and settles after the first LoadUser.
type State struct {
	Authenticated bool
	Loading       bool
	User          *api.User
}

// AuthAPI is the slice of the REST client the session manager needs.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	LoadUser(ctx context.Context, token string) (api.User, error)
}

// Manager owns session state, the current token and its persistence.
//
// Every transition that invalidates in-flight identity loads (Login, Logout)
// bumps a generation counter; a LoadUser response is discarded when the
// generation moved while the call was in flight. A logout followed by a stale
// load success therefore stays logged out.
type Manager struct {
	client AuthAPI
	store  TokenStore
	alert  func(msg string)

	mu    sync.Mutex
	state State
	token string
	gen   uint64
}

// NewManager reads any persisted token and returns a manager in the loading
// state. alert receives transient error messages from login/register
// failures; it may be nil.
func NewManager(client AuthAPI, store TokenStore, alert func(msg string)) (*Manager, error) {
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	if alert == nil {
		alert = func(string) {}
	}
	m := &Manager{
		client: client,
		store:  store,
		alert:  alert,
		state:  State{Loading: true},
		token:  token,
	}
	return m, nil
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the current session token ("" when logged out).
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// LoadUser resolves the stored token to a user. Any failure, including a
// missing or rejected token, lands in the unauthenticated state without
// surfacing an error: "not logged in" is not a reportable failure.
func (m *Manager) LoadUser(ctx context.Context) {
	m.mu.Lock()
	token := m.token
	gen := m.gen
	m.mu.Unlock()

	if token == "" {
		// Nothing to present; settle without a round-trip. A round-trip here
		// could authenticate off a response that raced with a logout.
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen != gen {
			return
		}
		m.state = State{Authenticated: false, Loading: false, User: nil}
		return
	}

	user, err := m.client.LoadUser(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// Login or logout happened while the call was in flight; the later
		// transition wins.
		return
	}
	if err != nil {
		m.state = State{Authenticated: false, Loading: false, User: nil}
		return
	}
	m.state = State{Authenticated: true, Loading: false, User: &user}
}

// Login exchanges credentials for a token, persists it and refreshes the
// user. On failure each server message goes to the alert sink and the session
// state is left unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.emitAlerts(err)
		return err
	}
	if err := m.adoptToken(token); err != nil {
		return err
	}
	m.LoadUser(ctx)
	return nil
}

// Register creates an account and then behaves like Login.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	token, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		m.emitAlerts(err)
		return err
	}
	if err := m.adoptToken(token); err != nil {
		return err
	}
	m.LoadUser(ctx)
	return nil
}

// Logout clears the session and the persisted token. No server round-trip is
// needed; the token simply stops being presented.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.gen++
	m.token = ""
	m.state = State{Authenticated: false, Loading: false, User: nil}
	m.mu.Unlock()
	return m.store.Clear()
}

// adoptToken persists the token and swaps it into memory as one step: if the
// write fails neither changes, so a stale token is never sent.
func (m *Manager) adoptToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(token); err != nil {
		return err
	}
	m.gen++
	m.token = token
	return nil
}

func (m *Manager) emitAlerts(err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		for _, msg := range apiErr.Messages {
			m.alert(msg)
		}
		return
	}
	m.alert(err.Error())
}
