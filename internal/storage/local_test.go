package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)

	url, err := store.Put(context.Background(), "shops", "123-abc.png", "image/png", []byte("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/shops/123-abc.png", url)

	data, err := os.ReadFile(filepath.Join(root, "uploads", "shops", "123-abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
}
