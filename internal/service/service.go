package service

import (
	"go.uber.org/zap"

	"github.com/regahr/hierarchical-locations-api/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Location LocationService
	Log      LogService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Location: NewLocationService(repo, logger),
		Log:      NewLogService(repo, logger),
		Export:   NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
