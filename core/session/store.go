package session

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/DrumilPatell/sms-system/core"
)

var (
	// ErrNoSession is returned by a Repository when no session has been persisted.
	ErrNoSession = errors.New("no session")

	errEmptyToken = errors.New("empty token")
)

// Repository persists the Session across process restarts. Implementations
// must return ErrNoSession when nothing is stored; corrupted data may be
// reported as any error, the Store treats it the same as absence.
type Repository interface {
	LoadSession() (Session, error)
	SaveSession(sess Session) error
	ClearSession() error
}

// Store is the single source of truth for the authenticated session.
// Only SetAuth and ClearAuth mutate it; persistence happens synchronously
// within the mutation so a reload right after login observes the new session.
type Store struct {
	mu     sync.RWMutex
	repo   Repository
	logger core.Logger
	cur    Session
}

func NewStore(repo Repository, logger core.Logger) *Store {
	s := &Store{repo: repo, logger: logger}

	sess, err := repo.LoadSession()
	if err != nil {
		if errors.Cause(err) != ErrNoSession {
			// corrupted or unreadable storage is treated as "no session"
			logger.Warn("discarding unreadable persisted session", err)
		}
		return s
	}
	if !sess.IsAuthenticated() {
		// never surface a partial session as an authenticated state
		sess = Session{}
	}
	s.cur = sess
	return s
}

// SetAuth stores the user and token atomically and persists the session.
func (s *Store) SetAuth(usr User, token string) error {
	if token == "" {
		return errEmptyToken
	}
	if err := usr.Validate(); err != nil {
		return errors.Wrap(err, "validating user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{User: &usr, Token: token}
	if err := s.repo.SaveSession(sess); err != nil {
		// unwritable session storage is not something we can serve through
		return errors.Wrap(core.NewShutdownError(err.Error()), "persisting session")
	}
	s.cur = sess
	return nil
}

// ClearAuth wipes the session and removes the persisted entry. Idempotent.
func (s *Store) ClearAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearSession(); err != nil {
		return errors.Wrap(core.NewShutdownError(err.Error()), "clearing persisted session")
	}
	s.cur = Session{}
	return nil
}

// Read returns a snapshot of the current session. It never blocks on IO and
// is safe to call from any goroutine; the returned value is a copy.
func (s *Store) Read() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.cur
	if sess.User != nil {
		usr := *sess.User
		sess.User = &usr
	}
	return sess
}

// Token returns the current bearer credential, or "" when not authenticated.
// It satisfies the backend client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}
