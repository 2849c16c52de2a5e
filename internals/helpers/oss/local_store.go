package helper

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore menyimpan dokumen di disk; file dilayani oleh app.Static di BaseURL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// cleanKey: key tidak boleh keluar dari Dir.
func cleanKey(key string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(key)), "/")
	if clean == "" {
		return "", fmt.Errorf("empty key")
	}
	return clean, nil
}

func (s *LocalStore) path(key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, filepath.FromSlash(clean)), nil
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + key, nil
}

func (s *LocalStore) DeleteByPublicURL(_ context.Context, publicURL string) error {
	prefix := s.BaseURL + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return fmt.Errorf("url bukan milik storage lokal: %s", publicURL)
	}
	p, err := s.path(strings.TrimPrefix(publicURL, prefix))
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
