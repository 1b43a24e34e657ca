// Package models - model lựa chọn (OptionItem) dùng chung cho hai
// collection mains và extras.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// OptionItem là một lựa chọn tái sử dụng được, phạm vi theo collection:
// mains (món chính kèm theo, không có giá) và extras (lựa chọn thêm có giá,
// chia nhóm con theo type). sortOrder do SequencedCollection quản lý —
// cả collection một nhóm với mains, theo type với extras.
type OptionItem struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Icon      string             `json:"icon,omitempty" bson:"icon,omitempty"`
	Price     float64            `json:"price,omitempty" bson:"price,omitempty"`
	Type      string             `json:"type,omitempty" bson:"type,omitempty"`
	SortOrder int64              `json:"sortOrder" bson:"sortOrder" index:"single"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
