package authdto

// StaffCreateInput đầu vào tạo nhân viên (CRUD, chỉ admin).
type StaffCreateInput struct {
	Username string `json:"username" validate:"required" maxLength:"64"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,strong_password"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
}

// StaffLoginInput đầu vào đăng nhập nhân viên.
type StaffLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Hwid     string `json:"hwid" validate:"required"`
}

// StaffLogoutInput đầu vào đăng xuất nhân viên.
type StaffLogoutInput struct {
	Hwid string `json:"hwid" validate:"required"`
}

// StaffChangeInfoInput đầu vào thay đổi thông tin nhân viên.
type StaffChangeInfoInput struct {
	Name string `json:"name"`
}

// StaffChangePasswordInput đầu vào đổi mật khẩu.
type StaffChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// BlockStaffInput đầu vào khóa nhân viên.
type BlockStaffInput struct {
	Username string `json:"username" validate:"required"`
	Note     string `json:"note" validate:"required"`
}

// UnBlockStaffInput đầu vào mở khóa nhân viên.
type UnBlockStaffInput struct {
	Username string `json:"username" validate:"required"`
}

// StaffSetRoleInput đầu vào gán vai trò cho nhân viên (chỉ admin).
type StaffSetRoleInput struct {
	Role string `json:"role" validate:"required,oneof=admin staff"`
}
