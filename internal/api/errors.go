package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
	"github.com/taoyao-code/ir-remote/internal/remote"
)

// statusForError 核心错误映射为 HTTP 状态码
func statusForError(err error) int {
	switch {
	case errors.Is(err, panasonic.ErrTemperatureOutOfRange),
		errors.Is(err, panasonic.ErrInvalidFanMode),
		errors.Is(err, remote.ErrBadTemperature),
		errors.Is(err, remote.ErrBadOnOff):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
