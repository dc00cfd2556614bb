package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taoyao-code/ir-remote/internal/health"
)

// NewHealthAggregator 创建健康检查聚合器，数据库未启用时不检查
func NewHealthAggregator(dbpool *pgxpool.Pool) *health.Aggregator {
	agg := health.NewAggregator()
	if dbpool != nil {
		agg.AddChecker(health.NewDatabaseChecker(dbpool))
	}
	return agg
}

// RegisterHealthRoutes 注册健康检查HTTP路由
func RegisterHealthRoutes(r *gin.Engine, aggregator *health.Aggregator) {
	health.RegisterHTTPRoutes(r, aggregator)
}

// AddEmitterChecker 添加发射器检查器到聚合器
func AddEmitterChecker(aggregator *health.Aggregator, p health.StatsProvider) {
	aggregator.AddChecker(health.NewEmitterChecker(p))
}
