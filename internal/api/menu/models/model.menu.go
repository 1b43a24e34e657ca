// Package models - model món ăn (MenuItem) thuộc domain menu.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuExtra là một lựa chọn thêm riêng của món (override danh sách extras chung).
type MenuExtra struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// MenuItem là một món bán được trên thực đơn.
// sortOrder trong mỗi category là dãy liên tục 0..n-1 do SequencedCollection
// quản lý; category chỉ là khóa nhóm, không quyết định thứ tự hiển thị.
type MenuItem struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Emoji       string             `json:"emoji,omitempty" bson:"emoji,omitempty"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty" index:"single"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	AllowMain   bool               `json:"allowMain" bson:"allowMain"`
	AllowExtras bool               `json:"allowExtras" bson:"allowExtras"`
	AllowNote   bool               `json:"allowNote" bson:"allowNote"`
	Extras      []MenuExtra        `json:"extras,omitempty" bson:"extras,omitempty"`
	SortOrder   int64              `json:"sortOrder" bson:"sortOrder" index:"single"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
