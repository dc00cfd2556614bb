package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/taoyao-code/ir-remote/internal/storage"
)

const credentialsKey = "wifi:credentials"

// CredentialStore 以 Redis hash 保存 WiFi 凭据
type CredentialStore struct {
	client *Client
}

var _ storage.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore 创建凭据存储
func NewCredentialStore(client *Client) *CredentialStore {
	return &CredentialStore{client: client}
}

// Load 读取凭据
func (s *CredentialStore) Load(ctx context.Context) (storage.Credentials, error) {
	vals, err := s.client.HGetAll(ctx, s.client.Key(credentialsKey)).Result()
	if errors.Is(err, redis.Nil) {
		return storage.Credentials{}, storage.ErrNoCredentials
	}
	if err != nil {
		return storage.Credentials{}, err
	}
	ssid := vals["ssid"]
	if ssid == "" {
		return storage.Credentials{}, storage.ErrNoCredentials
	}
	return storage.Credentials{SSID: ssid, Password: vals["password"]}, nil
}

// Save 覆盖写入
func (s *CredentialStore) Save(ctx context.Context, c storage.Credentials) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.client.HSet(ctx, s.client.Key(credentialsKey), "ssid", c.SSID, "password", c.Password).Err()
}
