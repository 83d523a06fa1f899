// Package artifact persists the normalized token trees: one standalone JSON
// document per collection, each carrying a generated description and a
// timestamp alongside the token tree payload, plus an optional S3 publisher.
package artifact

import (
	"fmt"
	"strings"
	"time"

	"github.com/Legal-and-General/canopy-design-tokens/internal/jsonutil"
	"github.com/Legal-and-General/canopy-design-tokens/internal/outfs"
	"github.com/Legal-and-General/canopy-design-tokens/internal/tokens"
)

// Document is the persisted intermediate form for one collection.
type Document struct {
	Description string       `json:"description"`
	GeneratedAt string       `json:"generatedAt"`
	Tokens      *tokens.Tree `json:"tokens"`
}

// Store writes collection documents under a root-locked output directory.
type Store struct {
	dir *outfs.Dir
	now func() time.Time
}

func NewStore(dir *outfs.Dir) *Store {
	return &Store{dir: dir, now: time.Now}
}

// WriteCollection persists one collection's token tree and returns the file
// name written.
func (s *Store) WriteCollection(name string, tree *tokens.Tree) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("artifact: collection name is required")
	}
	doc := Document{
		Description: fmt.Sprintf("Design tokens for the %s collection. Generated by canopy-design-tokens; do not edit by hand.", name),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Tokens:      tree,
	}
	b, err := jsonutil.MarshalNoEscapeIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("artifact: encode %s: %w", name, err)
	}
	file := Slug(name) + ".json"
	if err := s.dir.WriteFile(file, append(b, '\n')); err != nil {
		return "", fmt.Errorf("artifact: write %s: %w", file, err)
	}
	return file, nil
}

// Slug converts a collection display name into a file-safe name, e.g.
// "Component themes" -> "component-themes".
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(s), "-")
}
