package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

type DiskStore struct {
	// BasePath is a directory that is writable by the current process
	BasePath  string
	dirExists bool
	dirsMutex sync.Mutex
}

func NewDiskStore(basePath string) (*DiskStore, error) {
	if basePath == "" {
		return nil, errors.New("disk store path empty")
	}
	return &DiskStore{BasePath: basePath}, nil
}

func (s *DiskStore) createDir() error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if s.dirExists {
		return nil
	}
	if err := os.MkdirAll(s.BasePath, 0777); err != nil {
		return err
	}
	s.dirExists = true
	return nil
}

// getFullPath escapes the key so any key maps to a single file inside BasePath
func (s *DiskStore) getFullPath(key string) string {
	return filepath.Join(s.BasePath, url.QueryEscape(key)+".json")
}

func (s *DiskStore) Get(key string) (string, bool, error) {
	b, err := os.ReadFile(s.getFullPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), true, nil
}

// Set writes through a temp file of its own, so concurrent writers to one key
// leave one complete value behind
func (s *DiskStore) Set(key, value string) error {
	if err := s.createDir(); err != nil {
		return err
	}
	fileName := s.getFullPath(key)
	f, err := os.CreateTemp(s.BasePath, filepath.Base(fileName)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	tmp := f.Name()
	_, err = f.WriteString(value)
	if err == nil {
		err = f.Chmod(0o644)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, fileName)
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
