package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/ir-remote/internal/protocol/panasonic"
	"github.com/taoyao-code/ir-remote/internal/remote"
	"github.com/taoyao-code/ir-remote/internal/storage"
)

// StateHandler JSON API 处理器
type StateHandler struct {
	ctrl    *remote.Controller
	history storage.TransmissionLog
	logger  *zap.Logger
}

// NewStateHandler 创建 JSON API 处理器
func NewStateHandler(ctrl *remote.Controller, history storage.TransmissionLog, logger *zap.Logger) *StateHandler {
	return &StateHandler{ctrl: ctrl, history: history, logger: logger}
}

// StateRequest PUT /state 请求体，缺省字段保持原暂存值
type StateRequest struct {
	Power       *bool              `json:"power"`
	Temperature *float64           `json:"temperature"`
	FanMode     *panasonic.FanMode `json:"fan_mode"`
	Send        bool               `json:"send"`
}

// GetState 查询暂存状态与当前帧
// @Summary 查询遥控器状态
// @Tags 遥控器
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/state [get]
func (h *StateHandler) GetState(c *gin.Context) {
	desired := h.ctrl.Desired()
	c.JSON(http.StatusOK, gin.H{
		"desired":             desired,
		"desired_temperature": remote.FormatTemperature(desired),
		"frame":               h.ctrl.Remote().Status(),
	})
}

// PutState 暂存状态，send=true 时立即发射
// @Summary 设置遥控器状态
// @Tags 遥控器
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StateRequest true "目标状态"
// @Success 200 {object} map[string]interface{} "成功"
// @Failure 400 {object} map[string]interface{} "参数错误"
// @Router /api/v1/state [put]
func (h *StateHandler) PutState(c *gin.Context) {
	var req StateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	next := h.ctrl.Desired()
	if req.Power != nil {
		next.Power = *req.Power
	}
	if req.FanMode != nil {
		next.FanMode = *req.FanMode
	}
	if req.Temperature != nil {
		t, half, err := remote.ParseTemperature(strconv.FormatFloat(*req.Temperature, 'f', -1, 64))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_temperature", "message": fmt.Sprintf("%v: %g", err, *req.Temperature)})
			return
		}
		next.Temperature, next.Half = t, half
	}
	if err := h.ctrl.Stage(next); err != nil {
		c.JSON(statusForError(err), gin.H{"error": "invalid_state", "message": err.Error()})
		return
	}

	if !req.Send {
		c.JSON(http.StatusOK, gin.H{"desired": next})
		return
	}
	h.commit(c)
}

// Send 发射暂存状态
// @Summary 发射红外帧
// @Tags 遥控器
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} remote.Transmission "成功"
// @Failure 429 {object} map[string]interface{} "限流"
// @Router /api/v1/send [post]
func (h *StateHandler) Send(c *gin.Context) {
	h.commit(c)
}

func (h *StateHandler) commit(c *gin.Context) {
	tx, err := h.ctrl.Commit(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "transmit_failed", "message": err.Error(), "transmission": tx})
		return
	}
	c.JSON(http.StatusOK, gin.H{"desired": h.ctrl.Desired(), "transmission": tx})
}

// GetFrame 当前帧明细
// @Summary 查询当前帧
// @Tags 遥控器
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/frame [get]
func (h *StateHandler) GetFrame(c *gin.Context) {
	f := h.ctrl.Remote().Frame()
	pulses := panasonic.Modulate(f)
	verifyErr := f.Verify()
	c.JSON(http.StatusOK, gin.H{
		"frame":      f.String(),
		"header":     fmt.Sprintf("%x", f.Header()),
		"body":       fmt.Sprintf("%x", f.Body()),
		"checksum":   fmt.Sprintf("0x%02X", f.Checksum()),
		"valid":      verifyErr == nil,
		"state":      panasonic.Decode(f),
		"pulses":     len(pulses),
		"airtime_us": panasonic.Airtime(pulses).Microseconds(),
	})
}

// ListTransmissions 最近的发射记录
// @Summary 查询发射记录
// @Tags 遥控器
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量(默认20，最大100)"
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/v1/transmissions [get]
func (h *StateHandler) ListTransmissions(c *gin.Context) {
	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		vv, err := strconv.Atoi(v)
		if err != nil || vv <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_limit"})
			return
		}
		limit = min(vv, maxHistoryLimit)
	}

	if h.history == nil {
		c.JSON(http.StatusOK, gin.H{"transmissions": []storage.TransmissionRecord{}})
		return
	}
	list, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list transmissions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transmissions": list})
}
