// Package authsvc - service nhân viên (Staff).
package authsvc

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	authdto "github.com/hanguan2025/my-order-admin/internal/api/auth/dto"
	models "github.com/hanguan2025/my-order-admin/internal/api/auth/models"
	basesvc "github.com/hanguan2025/my-order-admin/internal/api/base/service"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffService là cấu trúc chứa các phương thức liên quan đến nhân viên
type StaffService struct {
	*basesvc.BaseServiceMongoImpl[models.Staff]
}

// NewStaffService tạo mới StaffService
func NewStaffService() (*StaffService, error) {
	staffCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Staff)
	if !exist {
		return nil, fmt.Errorf("failed to get staff collection: %v", common.ErrNotFound)
	}

	return &StaffService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Staff](staffCollection),
	}, nil
}

// CreateStaff tạo tài khoản nhân viên mới. Mật khẩu được hash bằng bcrypt trước khi lưu,
// không bao giờ lưu plaintext.
func (s *StaffService) CreateStaff(ctx context.Context, input *authdto.StaffCreateInput) (models.Staff, error) {
	var zero models.Staff

	hash, err := HashPassword(input.Password)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "Không thể hash mật khẩu", common.StatusInternalServerError, err)
	}

	staff := models.Staff{
		Username: input.Username,
		Name:     input.Name,
		Password: hash,
		Role:     input.Role,
		Tokens:   []models.Token{},
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, staff)
	if err != nil {
		return zero, err
	}
	return created, nil
}

// Login đăng nhập nhân viên bằng username + password.
// Thành công: tạo JWT mới, cập nhật token (mới nhất) và tokens (theo hwid) vào document.
func (s *StaffService) Login(ctx context.Context, input *authdto.StaffLoginInput) (*models.Staff, error) {
	staff, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"username": input.Username}, nil)
	if err != nil {
		// Không phân biệt sai username và sai password trong response.
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if staff.IsBlock {
		return nil, common.NewError(
			common.ErrCodeAuthCredentials,
			"Tài khoản đã bị khóa: "+staff.BlockNote,
			common.StatusForbidden,
			nil,
		)
	}

	// Tạo JWT token
	rdNumber := rand.Intn(100)
	currentTime := time.Now().Unix()
	tokenStr, err := CreateToken(
		global.MongoDB_ServerConfig.JwtSecret,
		staff.ID.Hex(),
		strconv.FormatInt(currentTime, 16),
		strconv.Itoa(rdNumber),
	)
	if err != nil {
		return nil, err
	}

	// Cập nhật token mới nhất và token theo hwid
	staff.Token = tokenStr
	idTokenExist := -1
	for i, t := range staff.Tokens {
		if t.Hwid == input.Hwid {
			idTokenExist = i
			break
		}
	}
	if idTokenExist == -1 {
		staff.Tokens = append(staff.Tokens, models.Token{Hwid: input.Hwid, JwtToken: tokenStr})
	} else {
		staff.Tokens[idTokenExist].JwtToken = tokenStr
	}

	tokenUpdateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token":  staff.Token,
			"tokens": staff.Tokens,
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(SetStaffIDToContext(ctx, staff.ID), staff.ID, tokenUpdateData)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"staff_id": staff.ID.Hex(),
			"error":    err.Error(),
		}).Error("Login: Lỗi khi cập nhật token vào staff")
		return nil, err
	}

	return &updated, nil
}

// Logout đăng xuất nhân viên (xóa token theo hwid)
func (s *StaffService) Logout(ctx context.Context, staffID primitive.ObjectID, input *authdto.StaffLogoutInput) error {
	staff, err := s.BaseServiceMongoImpl.FindOneById(ctx, staffID)
	if err != nil {
		return err
	}
	newTokens := make([]models.Token, 0)
	for _, t := range staff.Tokens {
		if t.Hwid != input.Hwid {
			newTokens = append(newTokens, t)
		}
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"tokens": newTokens,
			"token":  "",
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, staffID, updateData)
	return err
}

// ChangePassword đổi mật khẩu: yêu cầu mật khẩu cũ đúng, hash mật khẩu mới và
// thu hồi toàn bộ token hiện có (buộc đăng nhập lại trên mọi thiết bị).
func (s *StaffService) ChangePassword(ctx context.Context, staffID primitive.ObjectID, input *authdto.StaffChangePasswordInput) error {
	staff, err := s.BaseServiceMongoImpl.FindOneById(ctx, staffID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(input.OldPassword)); err != nil {
		return common.NewError(common.ErrCodeAuthCredentials, "Mật khẩu cũ không đúng", common.StatusUnauthorized, nil)
	}

	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể hash mật khẩu", common.StatusInternalServerError, err)
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"password": hash,
			"token":    "",
			"tokens":   []models.Token{},
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, staffID, updateData)
	return err
}

// BlockStaff khóa tài khoản nhân viên theo username và thu hồi token.
func (s *StaffService) BlockStaff(ctx context.Context, input *authdto.BlockStaffInput) (models.Staff, error) {
	var zero models.Staff
	staff, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"username": input.Username}, nil)
	if err != nil {
		return zero, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   true,
			"blockNote": input.Note,
			"token":     "",
			"tokens":    []models.Token{},
		},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, staff.ID, updateData)
}

// UnBlockStaff mở khóa tài khoản nhân viên theo username.
func (s *StaffService) UnBlockStaff(ctx context.Context, input *authdto.UnBlockStaffInput) (models.Staff, error) {
	var zero models.Staff
	staff, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"username": input.Username}, nil)
	if err != nil {
		return zero, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isBlock":   false,
			"blockNote": "",
		},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, staff.ID, updateData)
}

// SetRole gán vai trò (admin/staff) cho nhân viên.
func (s *StaffService) SetRole(ctx context.Context, staffID primitive.ObjectID, input *authdto.StaffSetRoleInput) (models.Staff, error) {
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"role": input.Role,
		},
	}
	return s.BaseServiceMongoImpl.UpdateById(ctx, staffID, updateData)
}

// FindByToken tìm nhân viên theo token xác thực (dùng bởi auth middleware).
// Ưu tiên field "token" (token mới nhất), sau đó tìm trong array "tokens" theo hwid.
func (s *StaffService) FindByToken(ctx context.Context, token string) (models.Staff, error) {
	staff, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"token": token}, nil)
	if err == nil {
		return staff, nil
	}
	return s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"tokens.jwtToken": token}, nil)
}

// IsAdmin kiểm tra nhân viên có vai trò admin không.
func (s *StaffService) IsAdmin(ctx context.Context, staffID primitive.ObjectID) (bool, error) {
	staff, err := s.BaseServiceMongoImpl.FindOneById(ctx, staffID)
	if err != nil {
		return false, err
	}
	return staff.Role == models.RoleAdmin, nil
}

// HashPassword hash mật khẩu bằng bcrypt với cost mặc định.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// InitAdminCheck đăng ký hàm kiểm tra admin cho base service (bảo vệ dữ liệu hệ thống).
// Gọi một lần lúc khởi động, sau khi registry collections đã sẵn sàng.
func InitAdminCheck() error {
	staffService, err := NewStaffService()
	if err != nil {
		return err
	}
	basesvc.SetIsAdminFromContextFunc(func(ctx context.Context) (bool, error) {
		staffID, ok := GetStaffIDFromContext(ctx)
		if !ok {
			return false, nil
		}
		return staffService.IsAdmin(ctx, staffID)
	})
	return nil
}
