package statssvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/hanguan2025/my-order-admin/internal/api/base/service"
	ordermodels "github.com/hanguan2025/my-order-admin/internal/api/order/models"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"
)

// StatsService đọc đơn đủ điều kiện từ database và chạy các hàm gom thuần
type StatsService struct {
	orders   *basesvc.BaseServiceMongoImpl[ordermodels.Order]
	location *time.Location
}

// NewStatsService tạo mới StatsService với múi giờ nhà hàng từ config
func NewStatsService() (*StatsService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}

	tz := "Asia/Taipei"
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.Timezone != "" {
		tz = global.MongoDB_ServerConfig.Timezone
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return &StatsService{
		orders:   basesvc.NewBaseServiceMongo[ordermodels.Order](orderCollection),
		location: location,
	}, nil
}

// Location trả về múi giờ dùng để chiếu cửa sổ lịch.
func (s *StatsService) Location() *time.Location {
	return s.location
}

// loadEligible đọc các đơn 已完成/歸檔 từ database. Lọc theo cửa sổ chạy
// trong bộ nhớ để cùng một code path thuần được dùng cho cả chạy thật và test.
func (s *StatsService) loadEligible(ctx context.Context) ([]ordermodels.Order, error) {
	filter := bson.M{"status": bson.M{"$in": []string{
		ordermodels.StatusCompleted,
		ordermodels.StatusArchived,
	}}}
	return s.orders.Find(ctx, filter, nil)
}

// Revenue trả về tổng doanh thu và số đơn của cửa sổ quanh anchor.
func (s *StatsService) Revenue(ctx context.Context, kind string, anchor time.Time) (RevenueSummary, error) {
	orders, err := s.loadEligible(ctx)
	if err != nil {
		return RevenueSummary{}, err
	}
	return AggregateRevenue(SelectWindow(orders, kind, anchor, s.location)), nil
}

// Dishes trả về thống kê từng món của cửa sổ quanh anchor.
func (s *StatsService) Dishes(ctx context.Context, kind string, anchor time.Time) ([]DishStat, error) {
	orders, err := s.loadEligible(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateDishes(SelectWindow(orders, kind, anchor, s.location)), nil
}
