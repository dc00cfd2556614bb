//go:build !linux

package emitter

import "github.com/taoyao-code/ir-remote/internal/protocol/panasonic"

// LIRCEmitter 非 Linux 平台占位
type LIRCEmitter struct{}

// OpenLIRC 非 Linux 平台不可用
func OpenLIRC(string, int, int) (*LIRCEmitter, error) { return nil, ErrUnsupported }

func (*LIRCEmitter) Name() string { return DriverLIRC }
func (*LIRCEmitter) Emit([]panasonic.Pulse) error { return ErrUnsupported }
func (*LIRCEmitter) Close() error { return nil }

// OpenGPIO 非 Linux 平台不可用
func OpenGPIO(string, int, bool) (Line, error) { return nil, ErrUnsupported }
