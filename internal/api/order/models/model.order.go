// Package models - model đơn hàng (Order) thuộc domain order.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "github.com/hanguan2025/my-order-admin/internal/api/base/models"
)

// Trạng thái đơn hàng. Chuỗi tiếng Trung là giá trị lưu trong DB, phải giữ
// nguyên từng byte để tương thích với frontend và dữ liệu cũ.
const (
	StatusPending    = "待處理" // Chờ xử lý
	StatusInProgress = "處理中" // Đang làm
	StatusCompleted  = "已完成" // Hoàn thành
	StatusArchived   = "歸檔"  // Lưu trữ
)

// AllStatuses liệt kê các trạng thái hợp lệ theo thứ tự quy trình.
var AllStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusArchived}

// ExtraOption là một lựa chọn thêm kèm giá.
type ExtraOption struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price,omitempty" bson:"price,omitempty"`
}

// LineItem là một món trong đơn. Bất biến sau khi đơn được tạo —
// backend chỉ đọc, không bao giờ sửa từng món.
// Ghi chú tùy chỉnh của khách nằm ở trường note; dữ liệu cũ dùng khóa
// 客製備註 và được migrate về note khi khởi động (xem MigrateLegacyNotes).
type LineItem struct {
	Name       string        `json:"name" bson:"name"`
	Emoji      string        `json:"emoji,omitempty" bson:"emoji,omitempty"`
	Main       string        `json:"main,omitempty" bson:"main,omitempty"`
	Extras     []ExtraOption `json:"extras,omitempty" bson:"extras,omitempty"`
	FinalPrice float64       `json:"finalPrice" bson:"finalPrice"`
	Note       string        `json:"note,omitempty" bson:"note,omitempty"`
}

// Order là một đơn hàng của khách. Đơn được tạo bởi luồng đặt món phía
// khách hàng; backend quản trị chỉ chuyển trạng thái và xóa có xác nhận.
type Order struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TableNum      string             `json:"tableNum" bson:"tableNum"`
	CustomerName  string             `json:"customerName,omitempty" bson:"customerName,omitempty"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	PaymentMethod string             `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	Items         []LineItem         `json:"items" bson:"items"`
	Note          string             `json:"note,omitempty" bson:"note,omitempty"`
	TotalAmount   float64            `json:"totalAmount" bson:"totalAmount"`
	Status        string             `json:"status" bson:"status" default:"待處理" index:"single"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt" index:"single"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}

// OrderView là Order kèm cờ hiển thị phía danh sách quản trị.
// Overtime = đơn 待處理 đã chờ quá ngưỡng cấu hình.
type OrderView struct {
	Order    `bson:",inline"`
	Overtime bool `json:"overtime"`
}

// OrderPaginateResult là kết quả phân trang danh sách đơn.
type OrderPaginateResult = basemodels.PaginateResult[OrderView]
