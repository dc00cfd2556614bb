package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/taoyao-code/ir-remote/internal/app/bootstrap"
	cfgpkg "github.com/taoyao-code/ir-remote/internal/config"
	"github.com/taoyao-code/ir-remote/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		// 1) 加载配置（重启时重新读取）
		cfg, err := cfgpkg.Load("")
		if err != nil {
			panic(err)
		}

		// 2) 初始化日志
		logger, err := logging.InitLogger(cfg.Logging)
		if err != nil {
			panic(err)
		}
		zap.ReplaceGlobals(logger)

		// 3) 运行直至退出或门户请求重启
		err = bootstrap.Run(ctx, cfg, logger)
		_ = logger.Sync()
		if errors.Is(err, bootstrap.ErrRestart) {
			logger.Info("restarting")
			continue
		}
		if err != nil {
			logger.Fatal("ir remote exited with error", zap.Error(err))
		}
		return
	}
}
