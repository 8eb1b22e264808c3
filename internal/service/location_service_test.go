package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/regahr/hierarchical-locations-api/internal/dto"
	"github.com/regahr/hierarchical-locations-api/internal/repository"
)

// ── 测试辅助 ──

func setupTestLocationService() (LocationService, *mockLocationRepo, *mockLocationVersionRepo) {
	locationRepo := newMockLocationRepo()
	versionRepo := newMockLocationVersionRepo()
	repo := &repository.Repository{
		Location:        locationRepo,
		LocationVersion: versionRepo,
		DatabaseLog:     newMockDatabaseLogRepo(),
		EndpointLog:     newMockEndpointLogRepo(),
	}
	svc := NewLocationService(repo, zap.NewNop())
	return svc, locationRepo, versionRepo
}

func mustCreate(t *testing.T, svc LocationService, name, number string) *dto.LocationResponse {
	t.Helper()
	result, err := svc.Create(context.Background(), &dto.CreateLocationRequest{
		LocationName:   name,
		LocationNumber: number,
	})
	if err != nil {
		t.Fatalf("创建地点 %s 应成功: %v", number, err)
	}
	return result
}

// ── Create 测试 ──

func TestLocationService_Create_TopLevel(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	result := mustCreate(t, svc, "Building A", "A")

	if result.Building != "A" {
		t.Errorf("无分隔符时楼栋应为整个编号，期望A，实际=%s", result.Building)
	}
	if result.ParentLocationID != nil {
		t.Errorf("顶层地点父级应为空，实际=%v", *result.ParentLocationID)
	}
}

func TestLocationService_Create_BuildingFromFirstSegment(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")
	result := mustCreate(t, svc, "Floor 1", "A-01")

	if result.Building != "A" {
		t.Errorf("楼栋应取首个-前的子串，期望A，实际=%s", result.Building)
	}
}

func TestLocationService_Create_EmptyBuildingFallback(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	result := mustCreate(t, svc, "怪编号", "-01")

	if result.Building != "UNKNOWN" {
		t.Errorf("空楼栋应回落UNKNOWN，实际=%s", result.Building)
	}
	if result.ParentLocationID != nil {
		t.Error("父级编号为空串时应视为顶层地点")
	}
}

func TestLocationService_Create_DetectsParent(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	building := mustCreate(t, svc, "Building A", "A")
	floor := mustCreate(t, svc, "Floor 1", "A-01")
	room := mustCreate(t, svc, "Room 1", "A-01-01")

	if floor.ParentLocationID == nil || *floor.ParentLocationID != building.ID {
		t.Errorf("A-01 的父级应为 A，实际=%v", floor.ParentLocationID)
	}
	if room.ParentLocationID == nil || *room.ParentLocationID != floor.ID {
		t.Errorf("A-01-01 的父级应为 A-01，实际=%v", room.ParentLocationID)
	}
	if room.Building != "A" {
		t.Errorf("A-01-01 的楼栋应为A，实际=%s", room.Building)
	}
}

func TestLocationService_Create_ParentNotFound(t *testing.T) {
	svc, locRepo, _ := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")

	_, err := svc.Create(context.Background(), &dto.CreateLocationRequest{
		LocationName:   "x",
		LocationNumber: "A-99-01",
	})

	var parentErr *ParentNotFoundError
	if !errors.As(err, &parentErr) {
		t.Fatalf("期望 ParentNotFoundError，实际: %v", err)
	}
	if parentErr.ParentNumber != "A-99" {
		t.Errorf("探测到的父级编号应为A-99，实际=%s", parentErr.ParentNumber)
	}
	if len(parentErr.Available) != 1 || parentErr.Available[0].LocationNumber != "A" {
		t.Errorf("错误应附带现有地点列表，实际=%v", parentErr.Available)
	}
	if len(locRepo.locations) != 1 {
		t.Errorf("父级探测失败时不应创建地点，实际地点数=%d", len(locRepo.locations))
	}
}

// ── GetAll 测试 ──

func TestLocationService_GetAll_Tree(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")
	mustCreate(t, svc, "Floor 1", "A-01")
	mustCreate(t, svc, "Room 1", "A-01-01")

	roots, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll 应成功: %v", err)
	}

	if len(roots) != 1 {
		t.Fatalf("应只有一个顶层地点，实际=%d", len(roots))
	}
	root := roots[0]
	if root.LocationNumber != "A" {
		t.Errorf("顶层地点应为A，实际=%s", root.LocationNumber)
	}
	if len(root.ChildLocations) != 1 || root.ChildLocations[0].LocationNumber != "A-01" {
		t.Fatalf("A 的子级应为A-01，实际=%v", root.ChildLocations)
	}
	floor := root.ChildLocations[0]
	if len(floor.ChildLocations) != 1 || floor.ChildLocations[0].LocationNumber != "A-01-01" {
		t.Fatalf("A-01 的子级应为A-01-01，实际=%v", floor.ChildLocations)
	}
}

func TestLocationService_GetAll_FullDepth(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")
	mustCreate(t, svc, "Floor 1", "A-01")
	mustCreate(t, svc, "Room 1", "A-01-01")
	mustCreate(t, svc, "Desk 1", "A-01-01-01")

	roots, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll 应成功: %v", err)
	}

	// 不封顶：四层全部展开
	node := roots[0]
	depth := 1
	for len(node.ChildLocations) > 0 {
		node = node.ChildLocations[0]
		depth++
	}
	if depth != 4 {
		t.Errorf("树应展开到4层，实际=%d", depth)
	}
}

func TestLocationService_GetAll_Idempotent(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")
	mustCreate(t, svc, "Building B", "B")
	mustCreate(t, svc, "Floor 1", "A-01")
	mustCreate(t, svc, "Floor 2", "A-02")

	first, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll 应成功: %v", err)
	}
	second, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll 应成功: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("无变更时连续两次 GetAll 应返回结构一致的树")
	}
}

// ── GetByNumber 测试 ──

func TestLocationService_GetByNumber_TwoLevelsOnly(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")
	mustCreate(t, svc, "Floor 1", "A-01")
	mustCreate(t, svc, "Room 1", "A-01-01")
	mustCreate(t, svc, "Desk 1", "A-01-01-01")

	result, err := svc.GetByNumber(context.Background(), "A")
	if err != nil {
		t.Fatalf("GetByNumber 应成功: %v", err)
	}

	if len(result.ChildLocations) != 1 {
		t.Fatalf("应附带子级，实际=%d", len(result.ChildLocations))
	}
	floor := result.ChildLocations[0]
	if len(floor.ChildLocations) != 1 || floor.ChildLocations[0].LocationNumber != "A-01-01" {
		t.Fatalf("应附带孙级，实际=%v", floor.ChildLocations)
	}
	// 刻意只取两层：曾孙级不展开
	if len(floor.ChildLocations[0].ChildLocations) != 0 {
		t.Error("GetByNumber 不应展开第三层子级")
	}
}

func TestLocationService_GetByNumber_NotFound(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	_, err := svc.GetByNumber(context.Background(), "Z-99")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestLocationService_Update_SnapshotsPriorState(t *testing.T) {
	svc, _, versionRepo := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")
	floor := mustCreate(t, svc, "Floor 1", "A-01")

	updated, err := svc.Update(context.Background(), floor.ID, &dto.UpdateLocationRequest{
		LocationName:   "Floor One",
		LocationNumber: "A-01",
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.LocationName != "Floor One" {
		t.Errorf("更新后名称应为Floor One，实际=%s", updated.LocationName)
	}

	versions := versionRepo.versions[floor.ID]
	if len(versions) != 1 {
		t.Fatalf("一次更新应产生一条版本快照，实际=%d", len(versions))
	}
	if versions[0].VersionNumber != 1 {
		t.Errorf("首个版本号应为1，实际=%d", versions[0].VersionNumber)
	}
	if versions[0].LocationName != "Floor 1" {
		t.Errorf("快照应记录更新前名称Floor 1，实际=%s", versions[0].LocationName)
	}
}

func TestLocationService_Update_VersionNumbersIncrease(t *testing.T) {
	svc, _, versionRepo := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")
	floor := mustCreate(t, svc, "Floor 1", "A-01")

	for i, name := range []string{"一层", "壹层", "1F"} {
		_, err := svc.Update(context.Background(), floor.ID, &dto.UpdateLocationRequest{
			LocationName:   name,
			LocationNumber: "A-01",
		})
		if err != nil {
			t.Fatalf("第%d次更新应成功: %v", i+1, err)
		}
	}

	versions := versionRepo.versions[floor.ID]
	if len(versions) != 3 {
		t.Fatalf("三次更新应产生三条版本快照，实际=%d", len(versions))
	}
	for i, v := range versions {
		if v.VersionNumber != i+1 {
			t.Errorf("版本号应严格递增，第%d条实际=%d", i+1, v.VersionNumber)
		}
	}
}

func TestLocationService_Update_RederivesParentAndBuilding(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	buildingA := mustCreate(t, svc, "Building A", "A")
	mustCreate(t, svc, "Building B", "B")
	room := mustCreate(t, svc, "Room", "B-01")

	updated, err := svc.Update(context.Background(), room.ID, &dto.UpdateLocationRequest{
		LocationName:   "Room",
		LocationNumber: "A-01",
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Building != "A" {
		t.Errorf("楼栋应按新编号重新推导为A，实际=%s", updated.Building)
	}
	if updated.ParentLocationID == nil || *updated.ParentLocationID != buildingA.ID {
		t.Errorf("父级应按新编号重新探测为A，实际=%v", updated.ParentLocationID)
	}
}

func TestLocationService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateLocationRequest{
		LocationName:   "x",
		LocationNumber: "X",
	})
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

func TestLocationService_Update_ParentNotFoundKeepsSnapshot(t *testing.T) {
	svc, locRepo, versionRepo := setupTestLocationService()

	building := mustCreate(t, svc, "Building A", "A")

	_, err := svc.Update(context.Background(), building.ID, &dto.UpdateLocationRequest{
		LocationName:   "Building A",
		LocationNumber: "Z-01",
	})

	var parentErr *ParentNotFoundError
	if !errors.As(err, &parentErr) {
		t.Fatalf("期望 ParentNotFoundError，实际: %v", err)
	}
	// 快照先于父级探测写入，失败后按约定保留
	if len(versionRepo.versions[building.ID]) != 1 {
		t.Errorf("失败的更新仍应留下已写入的版本快照，实际=%d", len(versionRepo.versions[building.ID]))
	}
	// 地点本身未被修改
	if locRepo.locations[building.ID].LocationNumber != "A" {
		t.Errorf("更新失败时地点不应被修改，实际编号=%s", locRepo.locations[building.ID].LocationNumber)
	}
}

// ── Delete 测试 ──

func TestLocationService_Delete_SingleLevelCascade(t *testing.T) {
	svc, locRepo, _ := setupTestLocationService()

	building := mustCreate(t, svc, "Building A", "A")
	mustCreate(t, svc, "Floor 1", "A-01")
	room := mustCreate(t, svc, "Room 1", "A-01-01")

	deleted, err := svc.Delete(context.Background(), building.ID)
	if err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if deleted.LocationNumber != "A" {
		t.Errorf("应返回被删地点的原状态，实际=%s", deleted.LocationNumber)
	}

	// 仅级联一层：A 与 A-01 删除，孙级 A-01-01 悬挂保留
	if _, ok := locRepo.locations[building.ID]; ok {
		t.Error("地点本身应被删除")
	}
	if len(locRepo.locations) != 1 {
		t.Fatalf("应只剩孙级地点，实际=%d", len(locRepo.locations))
	}
	if _, ok := locRepo.locations[room.ID]; !ok {
		t.Error("孙级地点应原样保留")
	}
}

func TestLocationService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	_, err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

// ── DeleteAll 测试 ──

func TestLocationService_DeleteAll(t *testing.T) {
	svc, locRepo, _ := setupTestLocationService()

	mustCreate(t, svc, "Building A", "A")
	mustCreate(t, svc, "Floor 1", "A-01")

	count, err := svc.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("DeleteAll 应成功: %v", err)
	}
	if count != 2 {
		t.Errorf("应返回删除行数2，实际=%d", count)
	}
	if len(locRepo.locations) != 0 {
		t.Errorf("应清空全部地点，实际=%d", len(locRepo.locations))
	}
}

// ── GetVersions 测试 ──

func TestLocationService_GetVersions(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	building := mustCreate(t, svc, "Building A", "A")
	for _, name := range []string{"A座", "甲座"} {
		if _, err := svc.Update(context.Background(), building.ID, &dto.UpdateLocationRequest{
			LocationName:   name,
			LocationNumber: "A",
		}); err != nil {
			t.Fatalf("Update 应成功: %v", err)
		}
	}

	versions, err := svc.GetVersions(context.Background(), "A")
	if err != nil {
		t.Fatalf("GetVersions 应成功: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("应有两条历史版本，实际=%d", len(versions))
	}
	if versions[0].VersionNumber != 1 || versions[0].LocationName != "Building A" {
		t.Errorf("版本1应记录最初名称，实际=%+v", versions[0])
	}
	if versions[1].VersionNumber != 2 || versions[1].LocationName != "A座" {
		t.Errorf("版本2应记录第一次更新前名称，实际=%+v", versions[1])
	}
}

func TestLocationService_GetVersions_NotFound(t *testing.T) {
	svc, _, _ := setupTestLocationService()

	_, err := svc.GetVersions(context.Background(), "Z")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/location_service_test.go
