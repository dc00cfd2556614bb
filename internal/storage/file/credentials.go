// Package file 以 YAML 文件保存 WiFi 凭据。
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/taoyao-code/ir-remote/internal/storage"
)

// CredentialStore 文件凭据存储
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

var _ storage.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore 创建存储，文件在首次 Save 时生成
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Path 返回文件路径
func (s *CredentialStore) Path() string { return s.path }

// Load 读取凭据
func (s *CredentialStore) Load(_ context.Context) (storage.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.Credentials{}, storage.ErrNoCredentials
	}
	if err != nil {
		return storage.Credentials{}, err
	}

	var c storage.Credentials
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return storage.Credentials{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if c.SSID == "" {
		return storage.Credentials{}, storage.ErrNoCredentials
	}
	return c, nil
}

// Save 原子写入（临时文件 + rename），权限 0600
func (s *CredentialStore) Save(_ context.Context, c storage.Credentials) error {
	if err := c.Validate(); err != nil {
		return err
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".wifi-*.yaml")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
