package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"

	cfgpkg "github.com/taoyao-code/ir-remote/internal/config"
	"github.com/taoyao-code/ir-remote/internal/storage/gormrepo"
	pgstorage "github.com/taoyao-code/ir-remote/internal/storage/pg"
)

// ConnectDB 建立数据库连接并确保发射记录表存在；未启用时返回 nil
func ConnectDB(ctx context.Context, cfg cfgpkg.DatabaseConfig, log *zap.Logger) (*pgxpool.Pool, error) {
	if !cfg.Enabled {
		log.Info("database is disabled, using in-memory transmission log")
		return nil, nil
	}
	dbpool, err := pgstorage.NewPool(ctx, cfg, log)
	if err != nil {
		log.Error("db connect error", zap.Error(err))
		return nil, err
	}
	if err := (&pgstorage.Repository{Pool: dbpool}).EnsureSchema(ctx); err != nil {
		log.Error("db schema error", zap.Error(err))
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

// OpenGorm 在同一连接池上打开 GORM
func OpenGorm(dbpool *pgxpool.Pool) (*gorm.DB, error) {
	if dbpool == nil {
		return nil, nil
	}
	return gormrepo.Open(dbpool)
}
