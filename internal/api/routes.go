package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/ir-remote/internal/api/middleware"
	"github.com/taoyao-code/ir-remote/internal/remote"
	"github.com/taoyao-code/ir-remote/internal/storage"
)

// RegisterRemoteRoutes 注册纯文本路由（无需认证）
// limiter 为 nil 时不限流
func RegisterRemoteRoutes(r *gin.Engine, ctrl *remote.Controller, limiter gin.HandlerFunc, logger *zap.Logger) {
	if r == nil || ctrl == nil {
		return
	}
	h := NewRemoteHandler(ctrl, logger)

	r.GET("/temperature", h.Temperature)
	r.GET("/temperature/:value", h.SetTemperature)
	r.GET("/stream_mode", h.FanMode)
	r.GET("/stream_mode/:mode", h.SetFanMode)
	r.GET("/on_off", h.Power)
	r.GET("/on_off/:state", h.SetPower)
	r.GET("/send", withLimiter(limiter, h.Send)...)

	logger.Info("remote text routes registered", zap.Int("endpoints", 7))
}

// RegisterV1Routes 注册 JSON API
func RegisterV1Routes(
	r *gin.Engine,
	ctrl *remote.Controller,
	history storage.TransmissionLog,
	authCfg middleware.AuthConfig,
	limiter gin.HandlerFunc,
	logger *zap.Logger,
) {
	if r == nil || ctrl == nil {
		return
	}
	h := NewStateHandler(ctrl, history, logger)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.CORS())
	if authCfg.Enabled {
		v1.Use(middleware.APIKeyAuth(authCfg, logger))
		logger.Info("api authentication enabled", zap.Int("api_keys_count", len(authCfg.APIKeys)))
	} else {
		logger.Warn("api authentication disabled - only for development!")
	}

	v1.GET("/state", h.GetState)
	v1.PUT("/state", withLimiter(limiter, h.PutState)...)
	v1.POST("/send", withLimiter(limiter, h.Send)...)
	v1.GET("/frame", h.GetFrame)
	v1.GET("/transmissions", h.ListTransmissions)

	logger.Info("v1 routes registered", zap.Int("endpoints", 5))
}

func withLimiter(limiter gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{limiter, h}
}
