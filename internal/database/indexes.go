// Package database - index cho các collection của dashboard nhà hàng.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hanguan2025/my-order-admin/internal/global"
)

// CreateIndexes tạo các index cần thiết cho orders, menu, mains, extras, staff.
// Gọi một lần khi khởi động server, index đã tồn tại được bỏ qua.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// orders: (status, createdAt) — danh sách theo trạng thái và cửa sổ thống kê
	orders := db.Collection(global.MongoDB_ColNames.Orders)
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("order_status_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// orders: createdAt — quét cửa sổ ngày/tháng/năm cho thống kê doanh thu
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("order_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// menu: (category, sortOrder) — thứ tự hiển thị trong từng danh mục
	menu := db.Collection(global.MongoDB_ColNames.Menu)
	if _, err := menu.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "sortOrder", Value: 1},
		},
		Options: options.Index().SetName("menu_category_sort"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// mains, extras: sortOrder — thứ tự hiển thị
	for _, name := range []string{global.MongoDB_ColNames.Mains, global.MongoDB_ColNames.Extras} {
		col := db.Collection(name)
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "sortOrder", Value: 1}},
			Options: options.Index().SetName(name + "_sort"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}

	// staff: username unique — đăng nhập
	staff := db.Collection(global.MongoDB_ColNames.Staff)
	if _, err := staff.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("staff_username").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
