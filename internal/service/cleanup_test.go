package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func docReferencing(urls ...string) []byte {
	content := `{"type":"doc","content":[`
	for i, url := range urls {
		if i > 0 {
			content += ","
		}
		content += fmt.Sprintf(`{"type":"image","attrs":{"src":%q}}`, url)
	}
	content += `]}`
	return []byte(content)
}

func TestReconcileImagesDeletesOnlyOrphans(t *testing.T) {
	storage := newFakeStorage()
	require.NoError(t, storage.Save("skill-images/s1/a.png", newMemFile([]byte("a")), "image/png"))
	require.NoError(t, storage.Save("skill-images/s1/b.png", newMemFile([]byte("b")), "image/png"))
	require.NoError(t, storage.Save("skill-images/s1/c.png", newMemFile([]byte("c")), "image/png"))
	require.NoError(t, storage.Save("skill-images/other/d.png", newMemFile([]byte("d")), "image/png"))

	cleanup := NewCleanupService(storage)
	content := docReferencing(
		storage.URL("skill-images/s1/a.png"),
		storage.URL("skill-images/s1/b.png"),
	)

	require.NoError(t, cleanup.ReconcileImages("skill-images/s1", content))
	require.Equal(t, []string{
		"skill-images/other/d.png",
		"skill-images/s1/a.png",
		"skill-images/s1/b.png",
	}, storage.paths())
}

func TestReconcileImagesIsIdempotent(t *testing.T) {
	storage := newFakeStorage()
	require.NoError(t, storage.Save("skill-images/s1/a.png", newMemFile([]byte("a")), "image/png"))
	require.NoError(t, storage.Save("skill-images/s1/b.png", newMemFile([]byte("b")), "image/png"))

	cleanup := NewCleanupService(storage)
	content := docReferencing(storage.URL("skill-images/s1/a.png"))

	require.NoError(t, cleanup.ReconcileImages("skill-images/s1", content))
	require.NoError(t, cleanup.ReconcileImages("skill-images/s1", content))
	require.Equal(t, []string{"skill-images/s1/a.png"}, storage.paths())
}

func TestReconcileImagesKeepsNestedReferences(t *testing.T) {
	storage := newFakeStorage()
	require.NoError(t, storage.Save("p/s1/a.png", newMemFile([]byte("a")), "image/png"))

	cleanup := NewCleanupService(storage)
	content := []byte(fmt.Sprintf(
		`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"image","attrs":{"src":%q}}]}]}`,
		storage.URL("p/s1/a.png"),
	))

	require.NoError(t, cleanup.ReconcileImages("p/s1", content))
	require.Equal(t, []string{"p/s1/a.png"}, storage.paths())
}

func TestReconcileImagesRefusesBrokenInput(t *testing.T) {
	storage := newFakeStorage()
	require.NoError(t, storage.Save("p/s1/a.png", newMemFile([]byte("a")), "image/png"))
	cleanup := NewCleanupService(storage)

	cases := map[string][]byte{
		"empty content": nil,
		"malformed":     []byte(`{"type":"doc"`),
		"non-doc root":  []byte(`{"type":"paragraph"}`),
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			err := cleanup.ReconcileImages("p/s1", content)
			require.ErrorIs(t, err, ErrValidation)
			// Broken input must never trigger deletions.
			require.Equal(t, []string{"p/s1/a.png"}, storage.paths())
		})
	}

	err := cleanup.ReconcileImages("", docReferencing())
	require.ErrorIs(t, err, ErrValidation)
}

func TestPurgePrefix(t *testing.T) {
	storage := newFakeStorage()
	require.NoError(t, storage.Save("p/s1/a.png", newMemFile([]byte("a")), "image/png"))
	require.NoError(t, storage.Save("p/s1/b.png", newMemFile([]byte("b")), "image/png"))
	require.NoError(t, storage.Save("p/s2/c.png", newMemFile([]byte("c")), "image/png"))

	cleanup := NewCleanupService(storage)
	require.NoError(t, cleanup.PurgePrefix("p/s1"))
	require.Equal(t, []string{"p/s2/c.png"}, storage.paths())

	err := cleanup.PurgePrefix("")
	require.ErrorIs(t, err, ErrValidation)
}
