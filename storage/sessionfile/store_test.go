package sessionfile

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/DrumilPatell/sms-system/core"
	"github.com/DrumilPatell/sms-system/core/session"
	logsvc "github.com/DrumilPatell/sms-system/services/logger"
)

func setup(t *testing.T) (session.Repository, string) {
	conf := new(core.Config)
	conf.Session.Dir = t.TempDir()
	conf.Session.Namespace = "auth-storage"
	return NewRepository(conf), filepath.Join(conf.Session.Dir, "auth-storage.json")
}

func TestRepository_roundTrip(t *testing.T) {
	repo, path := setup(t)

	usr := session.User{ID: 1, Email: "a@b.com", FullName: "A B", Role: session.RoleStudent}
	sess := session.Session{User: &usr, Token: "abc123"}

	if err := repo.SaveSession(sess); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected persisted entry at %s: %v", path, err)
	}

	got, err := repo.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	assert.Equal(t, sess, got)
}

func TestRepository_absent(t *testing.T) {
	repo, _ := setup(t)

	_, err := repo.LoadSession()
	if errors.Cause(err) != session.ErrNoSession {
		t.Errorf("LoadSession() error = %v; want %v", err, session.ErrNoSession)
	}
}

func TestRepository_corruptEntry(t *testing.T) {
	repo, path := setup(t)

	if err := ioutil.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := repo.LoadSession(); err == nil {
		t.Error("LoadSession() expected an error for corrupt data")
	}
}

func TestRepository_clear(t *testing.T) {
	repo, path := setup(t)

	usr := session.User{ID: 1, Email: "a@b.com", FullName: "A B", Role: session.RoleAdmin}
	if err := repo.SaveSession(session.Session{User: &usr, Token: "abc"}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	if err := repo.ClearSession(); err != nil {
		t.Fatalf("ClearSession() failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected entry removed, got %v", err)
	}

	// clearing an already-empty store is not an error
	if err := repo.ClearSession(); err != nil {
		t.Errorf("ClearSession() failed on empty store: %v", err)
	}
}

func TestRepository_corruptEntryLoadsAsNoSession(t *testing.T) {
	conf := new(core.Config)
	conf.Session.Dir = t.TempDir()
	conf.Session.Namespace = "auth-storage"
	repo := NewRepository(conf)

	path := filepath.Join(conf.Session.Dir, "auth-storage.json")
	if err := ioutil.WriteFile(path, []byte(`{"token":`), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	store := session.NewStore(repo, logsvc.NewNopLogger())
	assert.False(t, store.Read().IsAuthenticated())
}
