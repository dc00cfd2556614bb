package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	cfgpkg "github.com/taoyao-code/ir-remote/internal/config"
	"github.com/taoyao-code/ir-remote/internal/storage"
	filestorage "github.com/taoyao-code/ir-remote/internal/storage/file"
	"github.com/taoyao-code/ir-remote/internal/storage/gormrepo"
	pgstorage "github.com/taoyao-code/ir-remote/internal/storage/pg"
	redisstorage "github.com/taoyao-code/ir-remote/internal/storage/redis"
)

// NewTransmissionLog 有数据库时写 PostgreSQL，否则使用内存环形记录
func NewTransmissionLog(cfg cfgpkg.RemoteConfig, dbpool *pgxpool.Pool) storage.TransmissionLog {
	if dbpool != nil {
		return &pgstorage.Repository{Pool: dbpool}
	}
	return storage.NewMemoryLog(cfg.HistorySize)
}

// NewCredentialStore 按配置选择 WiFi 凭据存储
func NewCredentialStore(
	ctx context.Context,
	cfg cfgpkg.CredentialStoreConfig,
	redisClient *redisstorage.Client,
	db *gorm.DB,
) (storage.CredentialStore, error) {
	switch cfg.Driver {
	case "", "file":
		return filestorage.NewCredentialStore(cfg.Path), nil
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("credential store redis: redis is disabled")
		}
		return redisstorage.NewCredentialStore(redisClient), nil
	case "database":
		if db == nil {
			return nil, fmt.Errorf("credential store database: database is disabled")
		}
		repo := gormrepo.New(db)
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate wifi_credentials: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown credential store driver %q", cfg.Driver)
	}
}
