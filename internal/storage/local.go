package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes under <root>/uploads/<folder>/ and serves back
// site-relative URLs.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Put(
	_ context.Context,
	folder string,
	filename string,
	_ string,
	data []byte,
) (string, error) {

	dir := filepath.Join(s.root, "uploads", folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/%s/%s", folder, filename), nil
}

var _ ObjectStore = (*LocalStore)(nil)
