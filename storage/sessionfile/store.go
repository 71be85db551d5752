package sessionfile

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/DrumilPatell/sms-system/core"
	"github.com/DrumilPatell/sms-system/core/session"
)

// repository persists the session as a single namespaced JSON file,
// the durable client-side storage entry of the console.
type repository struct {
	path string
}

var _ session.Repository = (*repository)(nil)

func NewRepository(conf *core.Config) session.Repository {
	return &repository{
		path: filepath.Join(conf.Session.Dir, conf.Session.Namespace+".json"),
	}
}

func (repo *repository) LoadSession() (session.Session, error) {
	data, err := ioutil.ReadFile(repo.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, session.ErrNoSession
		}
		return session.Session{}, errors.Wrapf(err, "reading %s", repo.path)
	}

	var sess session.Session
	if err = json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, errors.Wrapf(err, "parsing %s", repo.path)
	}
	return sess, nil
}

func (repo *repository) SaveSession(sess session.Session) error {
	if err := os.MkdirAll(filepath.Dir(repo.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	// write to a temp file then rename so a crash mid-write cannot leave a
	// truncated entry behind
	tmp, err := ioutil.TempFile(filepath.Dir(repo.path), ".session-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file mode")
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing session")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrapf(os.Rename(tmp.Name(), repo.path), "renaming %s", repo.path)
}

func (repo *repository) ClearSession() error {
	if err := os.Remove(repo.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", repo.path)
	}
	return nil
}
