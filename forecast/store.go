package forecast

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"smartstock/gbt"
)

// ModelStore persists one fitted model per SKU as a JSON artifact under a
// configured directory. The directory is explicit construction-time state so
// separate instances (tests, tenants) can coexist.
type ModelStore struct {
	dir string
}

// NewModelStore creates the artifact directory if needed.
func NewModelStore(dir string) (*ModelStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("model store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("model store: create %s: %w", dir, err)
	}
	return &ModelStore{dir: dir}, nil
}

// Dir returns the artifact directory.
func (s *ModelStore) Dir() string { return s.dir }

// SanitizeSKU makes a SKU safe for use as a file name: every rune outside
// the alphanumeric/hyphen/underscore set becomes an underscore. Two distinct
// SKUs can sanitize to the same key; the trainer detects and rejects such
// configurations rather than letting one silently overwrite the other.
func SanitizeSKU(sku string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, sku)
}

// Path returns the artifact path for a SKU.
func (s *ModelStore) Path(sku string) string {
	return filepath.Join(s.dir, SanitizeSKU(sku)+".json")
}

// Exists reports whether an artifact is already present for the SKU.
func (s *ModelStore) Exists(sku string) bool {
	_, err := os.Stat(s.Path(sku))
	return err == nil
}

// Save writes the model artifact for a SKU. When an artifact already exists
// and force is false the write is skipped and saved=false is returned. The
// write itself is atomic (temp file then rename), so concurrent trainers are
// last-writer-wins with no torn files; the skip-if-exists check is
// deliberately not transactional across processes.
func (s *ModelStore) Save(sku string, m *gbt.Model, force bool) (path string, saved bool, err error) {
	path = s.Path(sku)
	if !force && s.Exists(sku) {
		return path, false, nil
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return path, false, fmt.Errorf("model store: encode %s: %w", sku, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".model-*.tmp")
	if err != nil {
		return path, false, fmt.Errorf("model store: temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return path, false, fmt.Errorf("model store: write %s: %w", sku, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return path, false, fmt.Errorf("model store: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return path, false, fmt.Errorf("model store: replace %s: %w", sku, err)
	}
	return path, true, nil
}

// Load returns the model for a SKU. A missing artifact is a normal state and
// returns ok=false. A corrupt artifact is treated the same way, logged as a
// warning, never an error to the caller.
func (s *ModelStore) Load(sku string) (m *gbt.Model, ok bool) {
	raw, err := os.ReadFile(s.Path(sku))
	if err != nil {
		return nil, false
	}
	var model gbt.Model
	if err := json.Unmarshal(raw, &model); err != nil {
		log.Printf("⚠️  Corrupt model artifact for SKU %s, falling back: %v", sku, err)
		return nil, false
	}
	return &model, true
}
