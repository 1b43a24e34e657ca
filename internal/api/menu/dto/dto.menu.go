package menudto

// MenuExtraInput là một lựa chọn thêm riêng của món.
type MenuExtraInput struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"min=0"`
}

// MenuCreateInput đầu vào tạo món mới. Thiếu tên hoặc giá → lỗi validation
// trước khi bất kỳ write nào được gửi xuống store. sortOrder không nhận từ
// client — món mới luôn xếp cuối nhóm.
type MenuCreateInput struct {
	Name        string           `json:"name" validate:"required,no_xss" maxLength:"128"`
	Price       float64          `json:"price" validate:"required,gt=0"`
	Emoji       string           `json:"emoji,omitempty"`
	Category    string           `json:"category,omitempty" validate:"omitempty,no_xss"`
	Description string           `json:"description,omitempty" validate:"omitempty,no_xss"`
	AllowMain   bool             `json:"allowMain"`
	AllowExtras bool             `json:"allowExtras"`
	AllowNote   bool             `json:"allowNote"`
	Extras      []MenuExtraInput `json:"extras,omitempty" validate:"omitempty,dive"`
}

// MenuUpdateInput đầu vào sửa món. Đổi category là một field edit thường:
// service tự re-append món vào cuối nhóm mới.
type MenuUpdateInput struct {
	Name        string           `json:"name,omitempty" validate:"omitempty,no_xss" maxLength:"128"`
	Price       float64          `json:"price,omitempty" validate:"omitempty,gt=0"`
	Emoji       string           `json:"emoji,omitempty"`
	Category    string           `json:"category,omitempty" validate:"omitempty,no_xss"`
	Description string           `json:"description,omitempty" validate:"omitempty,no_xss"`
	AllowMain   *bool            `json:"allowMain,omitempty"`
	AllowExtras *bool            `json:"allowExtras,omitempty"`
	AllowNote   *bool            `json:"allowNote,omitempty"`
	Extras      []MenuExtraInput `json:"extras,omitempty" validate:"omitempty,dive"`
}

// ReorderInput đầu vào reorder: rút moved khỏi vị trí hiện tại và chèn lại
// ngay trước/sau target trong cùng nhóm.
type ReorderInput struct {
	MovedID    string `json:"movedId" validate:"required"`
	TargetID   string `json:"targetId" validate:"required"`
	PlaceAfter bool   `json:"placeAfter"`
}
