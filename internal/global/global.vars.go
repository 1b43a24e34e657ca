package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hanguan2025/my-order-admin/config"
	"github.com/hanguan2025/my-order-admin/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Orders string // Tên collection cho đơn hàng
	Menu   string // Tên collection cho món ăn trên thực đơn
	Mains  string // Tên collection cho lựa chọn món chính
	Extras string // Tên collection cho lựa chọn thêm
	Staff  string // Tên collection cho tài khoản nhân viên
}

// Các biến toàn cục
var Validate *validator.Validate                     // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                    // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration       // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{       // Tên các collection
	Orders: "orders",
	Menu:   "menu",
	Mains:  "mains",
	Extras: "extras",
	Staff:  "staff",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
