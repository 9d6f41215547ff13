package authsdk

import (
	"encoding/json"
	"sync"
)

// Session is the client-side session cache. It mirrors the server's last
// answer; the cached token and role are trusted for UI decisions until a
// guarded request is rejected, at which point the session invalidates itself.
type Session struct {
	storage Storage

	mu          sync.RWMutex
	token       string
	account     AccountSummary
	hasAccount  bool
	nextSubID   int
	subscribers map[int]func()
}

// NewSession creates a session backed by the given storage. Call Restore once
// at startup to pick up a persisted login.
func NewSession(storage Storage) *Session {
	return &Session{
		storage:     storage,
		subscribers: map[int]func(){},
	}
}

// Restore loads the persisted session snapshot. A present token is trusted
// without re-verification; the first rejected request clears it.
func (s *Session) Restore() error {
	values, err := s.storage.Load()
	if err != nil {
		return err
	}

	token := values[StorageKeyAccessToken]
	raw := values[StorageKeyAccount]

	var account AccountSummary
	hasAccount := false
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &account); err == nil {
			hasAccount = true
		}
	}

	s.mu.Lock()
	s.token = token
	s.account = account
	s.hasAccount = hasAccount
	s.mu.Unlock()

	s.notify()
	return nil
}

// Login stores the account summary and token, in memory and persistently.
// Both storage keys land in a single snapshot write.
func (s *Session) Login(account AccountSummary, token string) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return err
	}

	if err := s.storage.Store(map[string]string{
		StorageKeyAccount:     string(raw),
		StorageKeyAccessToken: token,
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.account = account
	s.hasAccount = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// Logout clears the session, in memory and persistently, together.
func (s *Session) Logout() error {
	if err := s.storage.Store(map[string]string{}); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.account = AccountSummary{}
	s.hasAccount = false
	s.mu.Unlock()

	s.notify()
	return nil
}

// Invalidate drops the session after the server rejected its token. Storage
// errors are swallowed: the in-memory state must clear regardless.
func (s *Session) Invalidate() {
	_ = s.Logout()
}

// IsAuthenticated reports whether a token is cached. It is a UI hint, not a
// guarantee the token is still valid.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// IsAdmin reports whether the cached account carries the administrator role.
// Recomputed from state on every call, never cached separately.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.hasAccount && s.account.IsAdministrator()
}

// Token returns the cached session token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Account returns the cached account summary and whether one is present.
func (s *Session) Account() (AccountSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.hasAccount
}

// Subscribe registers fn to run after every session change (login, logout,
// restore, invalidation). Returns an unsubscribe function. Callbacks run
// synchronously on the goroutine that changed the session.
func (s *Session) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Session) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
