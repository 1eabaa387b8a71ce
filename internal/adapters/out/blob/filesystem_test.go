package blob_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shopfloor/internal/adapters/out/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemStore_PutOverwritesAndDeletes(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := blob.NewFilesystemStore(root)
	require.NoError(t, err)
	assert.Equal(t, blob.DriverFilesystem, store.Driver())

	location, err := store.Put(ctx, "abc_packing_qr.png", strings.NewReader("first"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "abc_packing_qr.png"), location)

	_, err = store.Put(ctx, "abc_packing_qr.png", strings.NewReader("second"), "image/png")
	require.NoError(t, err)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	require.NoError(t, store.Delete(ctx, "abc_packing_qr.png"))
	_, err = os.Stat(location)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, "abc_packing_qr.png"), "missing objects are not an error")
}

func TestFilesystemStore_NestedKey(t *testing.T) {
	root := t.TempDir()
	store, err := blob.NewFilesystemStore(root)
	require.NoError(t, err)

	location, err := store.Put(context.Background(), "2024/05/x.png", strings.NewReader("png"), "")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2024", "05", "x.png"), location)
}

func TestFilesystemStore_RejectsInvalidKeys(t *testing.T) {
	store, err := blob.NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "  ", "/etc/passwd", "../escape.png", "a/../../b"} {
		t.Run(key, func(t *testing.T) {
			_, err := store.Put(context.Background(), key, strings.NewReader("x"), "")
			assert.ErrorIs(t, err, blob.ErrInvalidKey)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := blob.Open(context.Background(), blob.Config{Driver: "ftp"})

	assert.Error(t, err)
}

func TestOpen_DefaultsToFilesystem(t *testing.T) {
	store, err := blob.Open(context.Background(), blob.Config{Root: t.TempDir()})

	require.NoError(t, err)
	assert.Equal(t, blob.DriverFilesystem, store.Driver())
}
