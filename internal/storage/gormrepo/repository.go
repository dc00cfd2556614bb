package gormrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/taoyao-code/ir-remote/internal/storage"
	"github.com/taoyao-code/ir-remote/internal/storage/models"
)

// Open 复用已有 pgx 连接池打开 GORM
func Open(pool *pgxpool.Pool) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// CredentialRepository 基于 GORM 的 WiFi 凭据存储。
type CredentialRepository struct {
	db *gorm.DB
}

var _ storage.CredentialStore = (*CredentialRepository)(nil)

// New 返回一个使用给定 *gorm.DB 的凭据存储。
func New(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Migrate 创建 wifi_credentials 表
func (r *CredentialRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&models.WiFiCredential{})
}

// Load 读取唯一一行凭据。
func (r *CredentialRepository) Load(ctx context.Context) (storage.Credentials, error) {
	var row models.WiFiCredential
	err := r.db.WithContext(ctx).
		Where("id = ?", models.WiFiCredentialRowID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.Credentials{}, storage.ErrNoCredentials
	}
	if err != nil {
		return storage.Credentials{}, err
	}
	return storage.Credentials{SSID: row.SSID, Password: row.Password}, nil
}

// Save 插入或覆盖凭据。
func (r *CredentialRepository) Save(ctx context.Context, c storage.Credentials) error {
	if err := c.Validate(); err != nil {
		return err
	}
	record := &models.WiFiCredential{
		ID:       models.WiFiCredentialRowID,
		SSID:     c.SSID,
		Password: c.Password,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"ssid":       c.SSID,
				"password":   c.Password,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(record).Error
}
