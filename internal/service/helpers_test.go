package service

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

// fakeStorage is an in-memory Storage for service tests.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string

	saveErr   error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

const fakeBaseURL = "https://cdn.test/folio"

func (f *fakeStorage) Save(path string, file io.Reader, contentType string) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return nil
}

func (f *fakeStorage) Delete(path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[path]; !ok {
		return errors.New("object not found")
	}
	delete(f.objects, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) List(prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var paths []string
	for path := range f.objects {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (f *fakeStorage) URL(path string) string {
	return fakeBaseURL + "/" + path
}

func (f *fakeStorage) PathFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, fakeBaseURL+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, fakeBaseURL+"/"), true
}

func (f *fakeStorage) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var paths []string
	for path := range f.objects {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// memFile adapts a byte slice to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(data []byte) memFile {
	return memFile{bytes.NewReader(data)}
}
