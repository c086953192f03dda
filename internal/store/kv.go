package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"guardian/internal/domain"
)

// ErrCorrupt is returned when a stored value cannot be parsed.
var ErrCorrupt = domain.ErrStorageCorrupt

const fileMode = 0o600

// KeyValue maps storage keys onto JSON files under a single directory.
type KeyValue struct {
	dir    string
	sealer *Sealer
}

// NewKeyValue returns a KeyValue rooted at dir. A nil sealer stores plain JSON.
func NewKeyValue(dir string, sealer *Sealer) *KeyValue {
	return &KeyValue{dir: dir, sealer: sealer}
}

// Dir returns the storage directory.
func (kv *KeyValue) Dir() string { return kv.dir }

// FileName returns the base file name used for key.
func (kv *KeyValue) FileName(key string) string {
	if kv.sealer != nil {
		return key + ".json.enc"
	}
	return key + ".json"
}

// Path returns the full path of the file backing key.
func (kv *KeyValue) Path(key string) string {
	return filepath.Join(kv.dir, kv.FileName(key))
}

// GetJSON decodes the value stored under key into out. It reports ok=false
// when nothing is stored.
func (kv *KeyValue) GetJSON(key string, out any) (bool, error) {
	b, err := kv.load(key)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, nil
	}
	if kv.sealer != nil {
		if b, err = kv.sealer.Open(key, b); err != nil {
			return false, err
		}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func (kv *KeyValue) SetJSON(key string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if kv.sealer != nil {
		if b, err = kv.sealer.Seal(key, b); err != nil {
			return err
		}
	}
	return kv.persist(key, b)
}
