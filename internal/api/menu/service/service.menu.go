// Package menusvc - service thực đơn: CRUD món ăn với thứ tự hiển thị
// được quản lý bởi SequencedCollection (nhóm theo category).
package menusvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/hanguan2025/my-order-admin/internal/api/base/service"
	models "github.com/hanguan2025/my-order-admin/internal/api/menu/models"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"
)

// MenuService là cấu trúc chứa các phương thức liên quan đến thực đơn
type MenuService struct {
	*basesvc.SequencedCollection[models.MenuItem]
}

// NewMenuService tạo mới MenuService
func NewMenuService() (*MenuService, error) {
	menuCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Menu)
	if !exist {
		return nil, fmt.Errorf("failed to get menu collection: %v", common.ErrNotFound)
	}

	return &MenuService{
		SequencedCollection: basesvc.NewSequencedCollection[models.MenuItem](
			global.MongoDB_Session, menuCollection, "category"),
	}, nil
}

// InsertOne tạo món mới, luôn xếp cuối nhóm category của nó
// (sortOrder = số món hiện có trong nhóm).
func (s *MenuService) InsertOne(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	var zero models.MenuItem

	next, err := s.NextSortOrder(ctx, item.Category)
	if err != nil {
		return zero, err
	}
	item.SortOrder = next

	return s.SequencedCollection.InsertOne(ctx, item)
}

// UpdateById sửa món. Đổi category re-append món vào cuối nhóm mới và
// normalize lại nhóm cũ để sortOrder hai nhóm đều liên tục.
func (s *MenuService) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (models.MenuItem, error) {
	var zero models.MenuItem

	update, err := basesvc.ToUpdateData(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	if newCategory, ok := update.Set["category"].(string); ok && newCategory != current.Category {
		next, err := s.NextSortOrder(ctx, newCategory)
		if err != nil {
			return zero, err
		}
		update.Set["sortOrder"] = next
	}

	updated, err := s.SequencedCollection.UpdateById(ctx, id, update)
	if err != nil {
		return zero, err
	}

	// Nhóm cũ hụt một món: dồn lại sortOrder 0..n-1
	if updated.Category != current.Category {
		if err := s.Normalize(ctx, current.Category); err != nil {
			return zero, err
		}
	}

	return updated, nil
}

// DeleteById xóa món rồi dồn lại sortOrder của nhóm.
func (s *MenuService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}

	if err := s.SequencedCollection.DeleteById(ctx, id); err != nil {
		return err
	}

	return s.Normalize(ctx, current.Category)
}
