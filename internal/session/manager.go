package session

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/merchdesk/internal/errors"
	"github.com/felixgeelhaar/merchdesk/internal/log"
	"github.com/felixgeelhaar/merchdesk/internal/platform"
)

const (
	// DefaultRefreshInterval is the cadence of proactive silent renewal.
	DefaultRefreshInterval = 13 * time.Minute

	// DefaultInitTimeout bounds initialization so startup can never hang.
	DefaultInitTimeout = 10 * time.Second

	// DefaultNetworkType is sent on login; the backend uses it to tell
	// dashboard sessions apart from other clients.
	DefaultNetworkType = "dashboard"
)

// Options tunes the manager. Zero values fall back to the defaults.
type Options struct {
	SafetyBuffer    time.Duration
	RefreshInterval time.Duration
	InitTimeout     time.Duration
	NetworkType     string
}

// Manager owns the Session and guarantees that every authorized API call
// either holds a token valid for at least the safety buffer, or the
// caller is transitioned to a signed-out state.
//
// The Manager is an explicit object with a Close teardown; there are no
// package-level singletons. It implements platform.TokenSource so the
// API client consults it before every request.
type Manager struct {
	api    *platform.Client
	store  CredentialStore
	logger *log.Logger

	buffer      time.Duration
	interval    time.Duration
	initTimeout time.Duration
	networkType string

	mu          sync.Mutex
	session     Session
	state       State
	generation  uint64
	subscribers []func(Snapshot)

	// renewMu serializes renewal attempts so the periodic trigger and a
	// manual RefreshAuth cannot race two refresh calls.
	renewMu sync.Mutex

	taskMu        sync.Mutex
	refreshCancel context.CancelFunc
}

// NewManager creates a session manager bound to the given API client and
// credential store, and installs itself as the client's token source.
func NewManager(api *platform.Client, store CredentialStore, logger *log.Logger, opts Options) *Manager {
	if opts.SafetyBuffer <= 0 {
		opts.SafetyBuffer = DefaultSafetyBuffer
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.InitTimeout <= 0 {
		opts.InitTimeout = DefaultInitTimeout
	}
	if opts.NetworkType == "" {
		opts.NetworkType = DefaultNetworkType
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}

	m := &Manager{
		api:         api,
		store:       store,
		logger:      logger.With("component", "session"),
		buffer:      opts.SafetyBuffer,
		interval:    opts.RefreshInterval,
		initTimeout: opts.InitTimeout,
		networkType: opts.NetworkType,
	}

	api.SetTokenSource(m)

	return m
}

// Token implements platform.TokenSource.
func (m *Manager) Token(ctx context.Context) string {
	return m.EnsureValidToken(ctx)
}

// Snapshot returns an immutable copy of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:         m.state,
		Token:         m.session.Token,
		Authenticated: m.session.Authenticated,
		Err:           m.session.Err,
	}
	if m.session.User != nil {
		user := *m.session.User
		snap.User = &user
	}
	return snap
}

// Subscribe registers a callback invoked after every session change.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) notify() {
	m.mu.Lock()
	subs := make([]func(Snapshot), len(m.subscribers))
	copy(subs, m.subscribers)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// EnsureValidToken returns a token usable for at least the safety buffer,
// renewing silently if needed.
//
// Returns "" when no usable token can be obtained. Never returns a token
// known to be expired and never returns an error: renewal failures
// collapse to "" and force a sign-out.
func (m *Manager) EnsureValidToken(ctx context.Context) string {
	m.mu.Lock()
	token := m.session.Token
	m.mu.Unlock()

	if CheckToken(token, m.buffer, time.Now()) == TokenValid {
		return token
	}

	return m.renew(ctx, false)
}

// renew performs a single serialized renewal attempt. The periodic
// trigger passes force to renew regardless of remaining validity.
func (m *Manager) renew(ctx context.Context, force bool) string {
	m.renewMu.Lock()
	defer m.renewMu.Unlock()

	// Another caller may have renewed while we waited for the lock.
	m.mu.Lock()
	token := m.session.Token
	gen := m.generation
	m.mu.Unlock()

	if !force && CheckToken(token, m.buffer, time.Now()) == TokenValid {
		return token
	}

	resp, err := m.api.Refresh(ctx)
	if err != nil {
		// Background maintenance failures are terminal for the session
		// and are never surfaced to the user directly. A failure for a
		// superseded generation belongs to the old session and must not
		// touch the current one.
		if !m.clearIfCurrent(gen) {
			m.logger.WithError(err).Debug("discarding failed renewal for a superseded session")
			return ""
		}
		m.logger.WithError(err).Warn("silent renewal failed, signing out")
		return ""
	}

	m.mu.Lock()
	if m.generation != gen {
		// Logged out (or re-authenticated) while the renewal was in
		// flight; discard the stale result instead of repopulating.
		m.mu.Unlock()
		return ""
	}
	m.session.Token = resp.AccessToken
	email := ""
	if m.session.User != nil {
		email = m.session.User.Email
	}
	m.mu.Unlock()

	m.persist(resp.AccessToken, email)
	m.notify()

	return resp.AccessToken
}

// Login authenticates with the backend and replaces the Session wholesale.
//
// On failure the prior (normally empty) state is kept with Err set, and
// the typed API error is returned to the caller.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	m.state = StateAuthenticating
	m.session.Err = ""
	m.mu.Unlock()
	m.notify()

	resp, err := m.api.Login(ctx, email, password, m.networkType)
	if err != nil {
		m.failLogin(err)
		return err
	}

	// Fetch the full profile (including grant collections) with the
	// fresh token before promoting the session.
	user, err := m.api.Profile(ctx, resp.AccessToken)
	if err != nil {
		m.failLogin(err)
		return err
	}

	m.mu.Lock()
	m.generation++
	m.session = Session{
		Token:         resp.AccessToken,
		Authenticated: true,
		User:          user,
	}
	m.state = StateSignedIn
	m.mu.Unlock()

	m.persist(resp.AccessToken, user.Email)
	m.startRefresher()
	m.notify()

	return nil
}

func (m *Manager) failLogin(err error) {
	msg := "login failed"
	if apiErr, ok := platform.IsAPIError(err); ok && apiErr.Message != "" {
		msg = apiErr.Message
	}

	m.mu.Lock()
	m.state = StateSignedOut
	m.session.Err = msg
	m.mu.Unlock()
	m.notify()
}

// Register creates a new account via the backend.
//
// An admin token is attached automatically when the current session holds
// one; the session itself is not modified.
func (m *Manager) Register(ctx context.Context, req platform.RegisterRequest) (*platform.User, error) {
	token := m.EnsureValidToken(ctx)
	return m.api.Register(ctx, req, token)
}

// Logout signs out: the server call is best-effort (failures are
// swallowed, never retried), the local state is always cleared.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.session.Token
	m.mu.Unlock()

	if token != "" {
		if err := m.api.Logout(ctx, token); err != nil {
			m.logger.WithError(err).Debug("server logout failed, clearing locally")
		}
	}

	m.clear("")
}

// RefreshAuth is the manual revalidation path: it ensures a valid token
// and refetches the profile, replacing the Session wholesale.
func (m *Manager) RefreshAuth(ctx context.Context) error {
	token := m.EnsureValidToken(ctx)
	if token == "" {
		// renew already cleared the session on failure.
		return errors.NewSessionExpiredError()
	}

	user, err := m.api.Profile(ctx, token)
	if err != nil {
		if apiErr, ok := platform.IsAPIError(err); ok && apiErr.IsUnauthorized() {
			m.clear("")
		}
		return err
	}

	m.mu.Lock()
	m.session.User = user
	m.session.Authenticated = true
	m.state = StateSignedIn
	m.mu.Unlock()
	m.notify()

	return nil
}

// Initialize attempts to restore a session from persisted credentials.
//
// Absent or invalid credentials leave a cleared state. The whole path is
// bounded by the init timeout so startup can never hang; a timeout also
// resolves to a cleared state. Initialize never returns an error for an
// unrestorable session, only for store corruption.
func (m *Manager) Initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.initTimeout)
	defer cancel()

	m.mu.Lock()
	m.state = StateAuthenticating
	m.mu.Unlock()
	m.notify()

	creds, err := m.store.Load()
	if err != nil {
		m.clear("")
		return err
	}
	if creds == nil || creds.AccessToken == "" {
		m.clear("")
		return nil
	}

	m.mu.Lock()
	m.session.Token = creds.AccessToken
	m.mu.Unlock()
	m.api.SetToken(creds.AccessToken)

	token := m.EnsureValidToken(ctx)
	if token == "" {
		m.clear("")
		return nil
	}

	user, err := m.api.Profile(ctx, token)
	if err != nil {
		m.logger.WithError(err).Debug("profile fetch during initialization failed")
		m.clear("")
		return nil
	}

	m.mu.Lock()
	m.generation++
	m.session = Session{
		Token:         token,
		Authenticated: true,
		User:          user,
	}
	m.state = StateSignedIn
	m.mu.Unlock()

	m.startRefresher()
	m.notify()

	return nil
}

// Close stops the periodic refresher. The session state is left as-is.
func (m *Manager) Close() {
	m.stopRefresher()
}

// clear unconditionally transitions to signed-out: bumps the generation
// so in-flight renewals are discarded, wipes both the in-memory session
// and the persisted credentials, and stops the refresher.
func (m *Manager) clear(errMsg string) {
	m.mu.Lock()
	m.generation++
	m.session = Session{Err: errMsg}
	m.state = StateSignedOut
	m.mu.Unlock()

	m.finishClear()
}

// clearIfCurrent clears the session only when the generation observed
// at the start of the renewal is still current; a login or logout that
// raced the renewal wins. Reports whether the session was cleared.
func (m *Manager) clearIfCurrent(gen uint64) bool {
	m.mu.Lock()
	if m.generation != gen {
		m.mu.Unlock()
		return false
	}
	m.generation++
	m.session = Session{}
	m.state = StateSignedOut
	m.mu.Unlock()

	m.finishClear()

	return true
}

func (m *Manager) finishClear() {
	m.stopRefresher()
	m.api.SetToken("")
	if err := m.store.Clear(); err != nil {
		m.logger.WithError(err).Warn("failed to clear stored credentials")
	}
	m.notify()
}

func (m *Manager) persist(token, email string) {
	err := m.store.Save(&Credentials{AccessToken: token, Email: email})
	if err != nil {
		// Persistence is for reload survival only; the live session is
		// unaffected.
		m.logger.WithError(err).Warn("failed to persist credentials")
	}
}

// startRefresher starts the proactive renewal task. The task is owned by
// the manager and cancelled deterministically on sign-out or Close.
func (m *Manager) startRefresher() {
	m.taskMu.Lock()
	defer m.taskMu.Unlock()

	if m.refreshCancel != nil {
		m.refreshCancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.refreshCancel = cancel

	go m.refreshLoop(ctx)
}

func (m *Manager) stopRefresher() {
	m.taskMu.Lock()
	defer m.taskMu.Unlock()

	if m.refreshCancel != nil {
		m.refreshCancel()
		m.refreshCancel = nil
	}
}

func (m *Manager) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A failed renewal clears the session, which cancels ctx.
			if m.renew(ctx, true) == "" {
				return
			}
		}
	}
}
