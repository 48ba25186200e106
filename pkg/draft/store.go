// Package draft persists edit sessions between CLI invocations. The
// browser editor kept its session in memory for the lifetime of the
// page; the CLI equivalent is one JSON document per entity under the
// user's profilectl directory.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caseline/profilectl/pkg/session"
)

// ErrNotFound is returned when no draft exists for an entity.
var ErrNotFound = errors.New("draft not found")

// Store reads and writes drafts on the local filesystem.
type Store struct {
	basePath string
}

// NewStore creates a draft store rooted at path. An empty path defaults
// to ~/.profilectl/drafts.
func NewStore(path string) (*Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".profilectl", "drafts")
	}

	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}

	return &Store{basePath: path}, nil
}

// Load reads the draft session for an entity. Returns ErrNotFound when
// none exists.
func (s *Store) Load(entityID string) (*session.Session, error) {
	data, err := os.ReadFile(s.draftPath(entityID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read draft for %s: %w", entityID, err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode draft for %s: %w", entityID, err)
	}
	return &sess, nil
}

// Save writes a draft session. The write goes to a temp file first and
// is renamed into place so a crash can never leave a torn draft.
func (s *Store) Save(sess *session.Session) error {
	if sess.EntityID == "" {
		return fmt.Errorf("draft session has no entity id")
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	tempFile, err := os.CreateTemp(s.basePath, ".profilectl-draft-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	_, err = tempFile.Write(data)
	if closeErr := tempFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write draft: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, s.draftPath(sess.EntityID)); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Delete removes an entity's draft. Deleting a missing draft is not an
// error.
func (s *Store) Delete(entityID string) error {
	if err := os.Remove(s.draftPath(entityID)); err != nil {
		if os.IsNotExist(err) {
			return nil // Idempotent
		}
		return fmt.Errorf("failed to delete draft for %s: %w", entityID, err)
	}
	return nil
}

// List returns the entity ids with a stored draft, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}

func (s *Store) draftPath(entityID string) string {
	// Escape so entity ids can never traverse outside the store
	return filepath.Join(s.basePath, url.PathEscape(entityID)+".json")
}
