package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDiskStoreUploadAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/media/", zap.NewNop())

	url, err := store.Upload(context.Background(), strings.NewReader("png-bytes"), "leaf.png", "image/png", "articles")
	require.NoError(t, err)
	assert.Equal(t, "/media/articles/leaf.png", url)

	data, err := os.ReadFile(filepath.Join(root, "articles", "leaf.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), url, "articles"))

	_, err = os.Stat(filepath.Join(root, "articles", "leaf.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreDeleteMissingFile(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/media", zap.NewNop())

	assert.NoError(t, store.Delete(context.Background(), "/media/articles/gone.png", "articles"))
	assert.NoError(t, store.Delete(context.Background(), "", "articles"))
}

func TestDiskStoreUploadCancelled(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/media", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, strings.NewReader("x"), "leaf.png", "image/png", "articles")
	assert.ErrorIs(t, err, context.Canceled)
}
