package orderdto

// ExtraOptionInput là một lựa chọn thêm trong món.
type ExtraOptionInput struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price,omitempty"`
}

// LineItemInput là một món trong đơn khi tạo đơn.
type LineItemInput struct {
	Name       string             `json:"name" validate:"required"`
	Emoji      string             `json:"emoji,omitempty"`
	Main       string             `json:"main,omitempty"`
	Extras     []ExtraOptionInput `json:"extras,omitempty"`
	FinalPrice float64            `json:"finalPrice" validate:"min=0"`
	Note       string             `json:"note,omitempty" validate:"omitempty,no_xss"`
}

// OrderCreateInput đầu vào tạo đơn hàng. Đơn bình thường do luồng đặt món
// phía khách tạo ra; route insert chủ yếu phục vụ nhập tay và seed dữ liệu.
// Đơn mới luôn vào trạng thái 待處理 (default tag trên model).
type OrderCreateInput struct {
	TableNum      string          `json:"tableNum" validate:"required"`
	CustomerName  string          `json:"customerName,omitempty" validate:"omitempty,no_xss"`
	Phone         string          `json:"phone,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Items         []LineItemInput `json:"items" validate:"required,min=1,dive"`
	Note          string          `json:"note,omitempty" validate:"omitempty,no_xss"`
	TotalAmount   float64         `json:"totalAmount" validate:"min=0"`
}

// OrderUpdateInput đầu vào sửa thông tin hiển thị của đơn.
// Trạng thái KHÔNG sửa qua đây — phải đi qua route chuyển trạng thái
// để đồ thị trạng thái được kiểm tra.
type OrderUpdateInput struct {
	TableNum      string `json:"tableNum,omitempty"`
	CustomerName  string `json:"customerName,omitempty" validate:"omitempty,no_xss"`
	Phone         string `json:"phone,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Note          string `json:"note,omitempty" validate:"omitempty,no_xss"`
}

// TransitionInput đầu vào chuyển trạng thái đơn.
type TransitionInput struct {
	Status string `json:"status" validate:"required,order_status"`
}
