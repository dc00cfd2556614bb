package app

import (
	"fmt"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/ir-remote/internal/config"
	"github.com/taoyao-code/ir-remote/internal/emitter"
	"github.com/taoyao-code/ir-remote/internal/metrics"
	"github.com/taoyao-code/ir-remote/internal/remote"
	"github.com/taoyao-code/ir-remote/internal/storage"
)

// NewRemote 打开发射器并创建遥控器
func NewRemote(cfg cfgpkg.EmitterConfig, history storage.TransmissionLog, appm *metrics.AppMetrics, log *zap.Logger) (*remote.Remote, error) {
	em, err := emitter.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open emitter %q: %w", cfg.Driver, err)
	}
	log.Info("ir emitter opened", zap.String("driver", em.Name()), zap.Int("carrier_hz", cfg.CarrierHz))

	return remote.New(em,
		remote.WithTransmissionLog(history),
		remote.WithMetrics(appm),
		remote.WithLogger(log.Named("remote")),
	), nil
}
