package sessionmem

import (
	"sync"

	"github.com/DrumilPatell/sms-system/core/session"
)

// repository is an in-memory session.Repository for tests and ephemeral runs.
type repository struct {
	mutex sync.RWMutex
	sess  *session.Session
}

var _ session.Repository = (*repository)(nil)

func NewRepository() session.Repository {
	return &repository{}
}

func (repo *repository) LoadSession() (session.Session, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	if repo.sess == nil {
		return session.Session{}, session.ErrNoSession
	}
	return *repo.sess, nil
}

func (repo *repository) SaveSession(sess session.Session) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	repo.sess = &sess
	return nil
}

func (repo *repository) ClearSession() error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	repo.sess = nil
	return nil
}
