package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
	"github.com/taoyao-code/ir-remote/internal/remote"
)

// RemoteHandler 纯文本接口：先暂存目标状态，/send 时一次写入并发射
type RemoteHandler struct {
	ctrl   *remote.Controller
	logger *zap.Logger
}

// NewRemoteHandler 创建文本接口处理器
func NewRemoteHandler(ctrl *remote.Controller, logger *zap.Logger) *RemoteHandler {
	return &RemoteHandler{ctrl: ctrl, logger: logger}
}

// Temperature 返回暂存温度，如 "24.5"
func (h *RemoteHandler) Temperature(c *gin.Context) {
	c.String(http.StatusOK, remote.FormatTemperature(h.ctrl.Desired()))
}

// SetTemperature 暂存温度
func (h *RemoteHandler) SetTemperature(c *gin.Context) {
	value, half, err := remote.ParseTemperature(c.Param("value"))
	if err == nil {
		err = h.ctrl.StageTemperature(value, half)
	}
	if err != nil {
		c.String(http.StatusBadRequest, textBadTemperature)
		return
	}
	c.String(http.StatusOK, "")
}

// FanMode 返回暂存风量模式
func (h *RemoteHandler) FanMode(c *gin.Context) {
	c.String(http.StatusOK, h.ctrl.Desired().FanMode.String())
}

// SetFanMode 暂存风量模式 AUTO|POWERFULL|QUIET
func (h *RemoteHandler) SetFanMode(c *gin.Context) {
	m, err := panasonic.ParseFanMode(c.Param("mode"))
	if err == nil {
		err = h.ctrl.StageFanMode(m)
	}
	if err != nil {
		c.String(http.StatusBadRequest, textBadStreamMode)
		return
	}
	c.String(http.StatusOK, "")
}

// Power 返回 ON|OFF
func (h *RemoteHandler) Power(c *gin.Context) {
	c.String(http.StatusOK, remote.FormatOnOff(h.ctrl.Desired().Power))
}

// SetPower 暂存开关机
func (h *RemoteHandler) SetPower(c *gin.Context) {
	on, err := remote.ParseOnOff(c.Param("state"))
	if err != nil {
		c.String(http.StatusBadRequest, textBadOnOff)
		return
	}
	h.ctrl.StagePower(on)
	c.String(http.StatusOK, "")
}

// Send 写入暂存状态并发射
func (h *RemoteHandler) Send(c *gin.Context) {
	if _, err := h.ctrl.Commit(c.Request.Context()); err != nil {
		h.logger.Error("send failed", zap.Error(err))
		c.String(statusForError(err), textSendFailed)
		return
	}
	c.String(http.StatusOK, textSend)
}
