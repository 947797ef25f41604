package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ArtifactStore saves uploaded files into a scoped directory. Saving is
// best-effort from the caller's perspective: ingestion already holds the
// extracted text in memory, so a failed save never fails the ingest.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates an artifact store rooted at dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

// Save writes data under the store's directory using a sanitized version of
// suggestedName, prefixed with a short unique ID to avoid collisions.
// It returns the path of the written file.
func (s *ArtifactStore) Save(data []byte, suggestedName string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	name := sanitizeName(suggestedName)
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s", uuid.New().String()[:8], name))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}

// sanitizeName strips path components and characters that don't belong in a
// file name.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "artifact"
	}
	return name
}
