package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	require.Equal(t, "photo.png", sanitizeFileName("photo.png"))
	require.Equal(t, "my-photo-1.png", sanitizeFileName("my photo (1).png"))
	require.Equal(t, "passwd", sanitizeFileName("../../etc/passwd"))
	require.Equal(t, "file", sanitizeFileName("???"))
}

func TestTimestampedKeyStaysUnderPrefix(t *testing.T) {
	key := timestampedKey("skill-images/s1", "shot.png")
	require.True(t, strings.HasPrefix(key, "skill-images/s1/"))
	require.True(t, strings.HasSuffix(key, "_shot.png"))
}

func TestReplaceSlotHappyPath(t *testing.T) {
	storage := newFakeStorage()
	require.NoError(t, storage.Save("slot/old.pdf", newMemFile([]byte("old")), "application/pdf"))
	oldURL := storage.URL("slot/old.pdf")

	var persisted string
	url, err := replaceSlot(storage, "slot/new.pdf", newMemFile([]byte("new")), "application/pdf", oldURL, func(url string) error {
		persisted = url
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, storage.URL("slot/new.pdf"), url)
	require.Equal(t, url, persisted)
	// The replaced object is gone, the new one stored.
	require.Equal(t, []string{"slot/new.pdf"}, storage.paths())
}

func TestReplaceSlotCompensatesOnPersistFailure(t *testing.T) {
	storage := newFakeStorage()
	require.NoError(t, storage.Save("slot/old.pdf", newMemFile([]byte("old")), "application/pdf"))
	oldURL := storage.URL("slot/old.pdf")

	_, err := replaceSlot(storage, "slot/new.pdf", newMemFile([]byte("new")), "application/pdf", oldURL, func(url string) error {
		return errors.New("db down")
	})

	require.Error(t, err)
	// The fresh upload was rolled back and the old object kept.
	require.Equal(t, []string{"slot/old.pdf"}, storage.paths())
}

func TestReplaceSlotWithEmptySlot(t *testing.T) {
	storage := newFakeStorage()

	url, err := replaceSlot(storage, "slot/new.pdf", newMemFile([]byte("new")), "application/pdf", "", func(url string) error {
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, storage.URL("slot/new.pdf"), url)
	require.Equal(t, []string{"slot/new.pdf"}, storage.paths())
}

func TestReplaceSlotFailsWhenSaveFails(t *testing.T) {
	storage := newFakeStorage()
	storage.saveErr = errors.New("s3 down")

	called := false
	_, err := replaceSlot(storage, "slot/new.pdf", newMemFile([]byte("new")), "application/pdf", "", func(url string) error {
		called = true
		return nil
	})

	require.Error(t, err)
	require.False(t, called)
}
