package web

import (
	"fmt"

	"github.com/chris-regnier/featurectl/internal/storage"
	"github.com/gorilla/sessions"
)

// sessionPrefs is a storage.PrefStore over a cookie session, the browser's
// counterpart to the file and sqlite stores. Values are kept as JSON text.
type sessionPrefs struct {
	session *sessions.Session
	dirty   bool
}

func (p *sessionPrefs) GetPref(key string) ([]byte, error) {
	v, ok := p.session.Values[key].(string)
	if !ok {
		return nil, fmt.Errorf("%w: preference %q", storage.ErrNotFound, key)
	}
	return []byte(v), nil
}

func (p *sessionPrefs) SetPref(key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	p.session.Values[key] = string(value)
	p.dirty = true
	return nil
}
