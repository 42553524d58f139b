package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/maisonember/restaurant-site/models"
	"github.com/maisonember/restaurant-site/utils"
)

//go:embed default_content.json
var defaultContent []byte

// ContentStore holds the single JSON document that drives the public site.
// The bundled default is served until an admin saves an edit, and again as
// a fallback when the saved file cannot be read. Updates replace the whole
// document; the replacement is validated before anything touches disk.
type ContentStore struct {
	path string
	mu   sync.Mutex
}

func NewContentStore(dataDir string) *ContentStore {
	return &ContentStore{path: filepath.Join(dataDir, "content.json")}
}

// Get returns the current content document, or the bundled default when no
// document has been saved yet.
func (s *ContentStore) Get() (models.ContentDocument, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.defaultDocument()
	}
	if err != nil {
		utils.ErrorLogger.Printf("Content file unreadable, serving default: %v", err)
		return s.defaultDocument()
	}
	var doc models.ContentDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		utils.ErrorLogger.Printf("Content file corrupt, serving default: %v", err)
		return s.defaultDocument()
	}
	return doc, nil
}

// Replace validates doc and atomically overwrites the stored document.
func (s *ContentStore) Replace(doc models.ContentDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("persist content: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("persist content: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("persist content: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("persist content: %w", err)
	}
	return nil
}

func (s *ContentStore) defaultDocument() (models.ContentDocument, error) {
	var doc models.ContentDocument
	if err := json.Unmarshal(defaultContent, &doc); err != nil {
		return nil, fmt.Errorf("bundled content: %w", err)
	}
	return doc, nil
}
