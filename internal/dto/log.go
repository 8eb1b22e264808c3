package dto

import "github.com/regahr/hierarchical-locations-api/internal/model"

// ── 日志模块 DTO ──

// DatabaseLogResponse 数据库查询日志响应
type DatabaseLogResponse struct {
	ID        int64         `json:"id"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
	Meta      model.JSONMap `json:"meta"`
	CreatedAt string        `json:"createdAt"`
}

// EndpointLogResponse 接口请求日志响应
type EndpointLogResponse struct {
	ID           int64         `json:"id"`
	Method       string        `json:"method"`
	URL          string        `json:"url"`
	Status       int           `json:"status"`
	ResponseTime int64         `json:"responseTime"`
	Meta         model.JSONMap `json:"meta"`
	CreatedAt    string        `json:"createdAt"`
}
