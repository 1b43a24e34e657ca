// Package ordersvc - service đơn hàng: chuyển trạng thái, xóa có xác nhận,
// đếm theo trạng thái và migrate ghi chú cũ.
package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/hanguan2025/my-order-admin/internal/api/base/service"
	models "github.com/hanguan2025/my-order-admin/internal/api/order/models"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"
	"github.com/hanguan2025/my-order-admin/internal/logger"
)

// OrderService là cấu trúc chứa các phương thức liên quan đến đơn hàng
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[models.Order]
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}

	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Order](orderCollection),
	}, nil
}

// TransitionStatus chuyển trạng thái một đơn theo đồ thị trạng thái.
// Bước chuyển bất hợp lệ bị từ chối TRƯỚC khi chạm database; bước hợp lệ
// chỉ ghi đúng trường status, không thay đổi trường nào khác.
func (s *OrderService) TransitionStatus(ctx context.Context, id primitive.ObjectID, targetStatus string) (models.Order, string, error) {
	var zero models.Order

	if !IsValidStatus(targetStatus) {
		return zero, "", common.NewError(common.ErrCodeValidationInput,
			"Trạng thái đơn không hợp lệ: "+targetStatus, common.StatusBadRequest, nil)
	}

	order, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, "", err
	}

	if !CanTransition(order.Status, targetStatus) {
		return zero, order.Status, common.ErrIllegalTransition
	}

	updated, err := s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": targetStatus},
	})
	if err != nil {
		return zero, order.Status, err
	}

	return updated, order.Status, nil
}

// DeleteOrder xóa một đơn sau khi kiểm tra guard:
//   - confirm phải là true (bước xác nhận của nhân viên) — 412 nếu thiếu;
//   - đơn 處理中 không được xóa — 409, không gọi xuống store.
func (s *OrderService) DeleteOrder(ctx context.Context, id primitive.ObjectID, confirm bool) (models.Order, error) {
	var zero models.Order

	if !confirm {
		return zero, common.ErrDeleteNotConfirmed
	}

	order, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	if !CanDelete(order.Status) {
		return zero, common.ErrDeleteInProgress
	}

	if err := s.DeleteById(ctx, id); err != nil {
		return zero, err
	}

	return order, nil
}

// CountsByStatus đếm số đơn theo từng trạng thái (cho tab lọc của dashboard).
// Trạng thái không có đơn nào vẫn xuất hiện với giá trị 0.
func (s *OrderService) CountsByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		counts[status] = 0
	}

	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		counts[row.Status] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return counts, nil
}

// IsOvertime kiểm tra một đơn 待處理 đã chờ quá ngưỡng cấu hình chưa.
// createdAt tính bằng millisecond.
func IsOvertime(order models.Order, now time.Time, threshold time.Duration) bool {
	if order.Status != models.StatusPending {
		return false
	}
	created := time.UnixMilli(order.CreatedAt)
	return now.Sub(created) > threshold
}

// overtimeThreshold đọc ngưỡng từ config
func overtimeThreshold() time.Duration {
	seconds := 300
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.OrderOvertimeSeconds > 0 {
		seconds = global.MongoDB_ServerConfig.OrderOvertimeSeconds
	}
	return time.Duration(seconds) * time.Second
}

// ListOrders trả về danh sách đơn phân trang, mới nhất trước, lọc được theo
// trạng thái, kèm cờ overtime cho đơn 待處理 chờ quá lâu.
func (s *OrderService) ListOrders(ctx context.Context, status string, page int64, limit int64) (*models.OrderPaginateResult, error) {
	filter := bson.M{}
	if status != "" {
		if !IsValidStatus(status) {
			return nil, common.NewError(common.ErrCodeValidationInput,
				"Trạng thái đơn không hợp lệ: "+status, common.StatusBadRequest, nil)
		}
		filter["status"] = status
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 1000 {
		limit = 50
	}

	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	orders, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	threshold := overtimeThreshold()
	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, models.OrderView{
			Order:    order,
			Overtime: IsOvertime(order, now, threshold),
		})
	}

	totalPage := total / limit
	if total%limit != 0 {
		totalPage++
	}

	return &models.OrderPaginateResult{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(views)),
		Items:     views,
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

// MigrateLegacyNotes chuyển ghi chú món từ khóa cũ 客製備註 sang trường
// chuẩn note. Chạy một lần lúc khởi động; sau đó toàn bộ code chỉ đọc note,
// không còn fallback rải rác.
func (s *OrderService) MigrateLegacyNotes(ctx context.Context) (int64, error) {
	filter := bson.M{"items.客製備註": bson.M{"$exists": true}}

	// Pipeline update: với mỗi phần tử items, note = note hiện có hoặc
	// giá trị khóa cũ, rồi bỏ hẳn khóa cũ.
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"items": bson.M{"$map": bson.M{
				"input": "$items",
				"as":    "item",
				"in": bson.M{"$mergeObjects": bson.A{
					"$$item",
					bson.M{"note": bson.M{"$ifNull": bson.A{"$$item.note", "$$item.客製備註"}}},
				}},
			}},
		}},
		bson.M{"$unset": "items.客製備註"},
	}

	result, err := s.Collection().UpdateMany(ctx, filter, pipeline)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	if result.ModifiedCount > 0 {
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"migrated": result.ModifiedCount,
		}).Info("[ORDER] Đã migrate ghi chú 客製備註 sang note")
	}

	return result.ModifiedCount, nil
}
