package optiondto

// OptionCreateInput đầu vào tạo lựa chọn mới. Tên là bắt buộc; giá chỉ có
// nghĩa với collection extras. Lựa chọn mới luôn xếp cuối nhóm của nó.
type OptionCreateInput struct {
	Name  string  `json:"name" validate:"required,no_xss" maxLength:"128"`
	Icon  string  `json:"icon,omitempty"`
	Price float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Type  string  `json:"type,omitempty" validate:"omitempty,no_xss"`
}

// OptionUpdateInput đầu vào sửa lựa chọn. Đổi type (với extras) re-append
// vào cuối nhóm mới.
type OptionUpdateInput struct {
	Name  string  `json:"name,omitempty" validate:"omitempty,no_xss" maxLength:"128"`
	Icon  string  `json:"icon,omitempty"`
	Price float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Type  string  `json:"type,omitempty" validate:"omitempty,no_xss"`
}

// ReorderInput đầu vào reorder trong cùng nhóm.
type ReorderInput struct {
	MovedID    string `json:"movedId" validate:"required"`
	TargetID   string `json:"targetId" validate:"required"`
	PlaceAfter bool   `json:"placeAfter"`
}
