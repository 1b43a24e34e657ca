// Package authsvc - tạo/xác thực JWT token và truyền staff ID qua context.
package authsvc

import (
	"context"

	models "github.com/hanguan2025/my-order-admin/internal/api/auth/models"
	"github.com/hanguan2025/my-order-admin/internal/common"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// staffIDContextKey là key riêng của package để lưu staff ID vào context.
type staffIDContextKey struct{}

// SetStaffIDToContext lưu staff ID vào context (dùng bởi handler/middleware để
// service phía dưới biết được ai đang thao tác).
func SetStaffIDToContext(ctx context.Context, staffID primitive.ObjectID) context.Context {
	return context.WithValue(ctx, staffIDContextKey{}, staffID)
}

// GetStaffIDFromContext lấy staff ID từ context.
func GetStaffIDFromContext(ctx context.Context) (primitive.ObjectID, bool) {
	staffID, ok := ctx.Value(staffIDContextKey{}).(primitive.ObjectID)
	return staffID, ok
}

// CreateToken tạo JWT token HS256 chứa staff ID, thời điểm và số ngẫu nhiên
// (time + randomNumber đảm bảo mỗi lần đăng nhập ra một token khác nhau).
func CreateToken(secret string, staffID string, timeHex string, randomNumber string) (string, error) {
	claims := &models.JwtToken{
		StaffID:      staffID,
		Time:         timeHex,
		RandomNumber: randomNumber,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không thể tạo token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// ParseToken xác thực chữ ký JWT và trả về claims.
func ParseToken(secret string, tokenStr string) (*models.JwtToken, error) {
	claims := &models.JwtToken{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}
