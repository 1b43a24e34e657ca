// Package models - model nhân viên (Staff) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò nhân viên.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Staff định nghĩa mô hình nhân viên quầy.
// Token chứa token xác thực mới nhất của nhân viên.
// Tokens chứa danh sách các token, mỗi thiết bị khác nhau sẽ có một token riêng để xác thực (bằng hwid).
// IsSystem đánh dấu tài khoản hệ thống (admin seed lúc khởi động) - chỉ admin mới sửa/xóa được.
type Staff struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username" index:"unique"`
	Name      string             `json:"name" bson:"name"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Role      string             `json:"role" bson:"role" default:"staff"`
	Token     string             `json:"token" bson:"token"`
	Tokens    []Token            `json:"-" bson:"tokens"`
	IsSystem  bool               `json:"isSystem" bson:"isSystem"`
	IsBlock   bool               `json:"-" bson:"isBlock"`
	BlockNote string             `json:"-" bson:"blockNote"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
