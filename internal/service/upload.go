package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/foliolab/folio/internal/storage"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeFileName(name string) string {
	base := filepath.Base(name)
	base = unsafeFileChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		base = "file"
	}
	return base
}

// timestampedKey builds a storage key under prefix that never collides with
// a previously stored object of the same name.
func timestampedKey(prefix, fileName string) string {
	return fmt.Sprintf("%s/%d_%s", strings.TrimSuffix(prefix, "/"), time.Now().UnixMilli(), sanitizeFileName(fileName))
}

// replaceSlot implements the single-slot replacement protocol: upload the
// new object, persist its URL, and only after the persist succeeds delete
// the previous object. A persist failure deletes the fresh upload so the
// slot's old value stays intact.
func replaceSlot(st storage.Storage, key string, file multipart.File, contentType, oldURL string, persist func(url string) error) (string, error) {
	err := st.Save(key, file, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	url := st.URL(key)
	err = persist(url)
	if err != nil {
		delErr := st.Delete(key)
		if delErr != nil {
			slog.Warn("failed to remove uploaded file after persist failure", "key", key, "error", delErr)
		}
		return "", err
	}

	if oldURL != "" && oldURL != url {
		deleteByURL(st, oldURL)
	}

	return url, nil
}

// deleteByURL best-effort deletes the object behind a previously stored URL.
func deleteByURL(st storage.Storage, url string) {
	path, ok := st.PathFromURL(url)
	if !ok {
		slog.Warn("stored url does not map to storage, skipping delete", "url", url)
		return
	}

	err := st.Delete(path)
	if err != nil {
		slog.Warn("failed to delete replaced file", "path", path, "error", err)
	}
}
