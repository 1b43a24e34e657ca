// Package optionsvc - service lựa chọn cho hai collection mains và extras.
// Một service dùng chung, mỗi instance gắn với một collection: mains cả
// collection là một nhóm sắp xếp, extras chia nhóm con theo type.
package optionsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/hanguan2025/my-order-admin/internal/api/base/service"
	models "github.com/hanguan2025/my-order-admin/internal/api/option/models"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"
)

// OptionService là cấu trúc chứa các phương thức cho một collection lựa chọn
type OptionService struct {
	*basesvc.SequencedCollection[models.OptionItem]
	groupField string
}

// newOptionService tạo OptionService gắn với collection và trường nhóm cho trước
func newOptionService(collectionName string, groupField string) (*OptionService, error) {
	collection, exist := global.RegistryCollections.Get(collectionName)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %v", collectionName, common.ErrNotFound)
	}

	return &OptionService{
		SequencedCollection: basesvc.NewSequencedCollection[models.OptionItem](
			global.MongoDB_Session, collection, groupField),
		groupField: groupField,
	}, nil
}

// NewMainsService tạo service cho collection mains (một nhóm duy nhất).
func NewMainsService() (*OptionService, error) {
	return newOptionService(global.MongoDB_ColNames.Mains, "")
}

// NewExtrasService tạo service cho collection extras (nhóm con theo type).
func NewExtrasService() (*OptionService, error) {
	return newOptionService(global.MongoDB_ColNames.Extras, "type")
}

// group trả về giá trị nhóm của một item theo cấu hình trường nhóm
func (s *OptionService) group(item models.OptionItem) string {
	if s.groupField == "" {
		return ""
	}
	return item.Type
}

// InsertOne tạo lựa chọn mới, luôn xếp cuối nhóm của nó.
func (s *OptionService) InsertOne(ctx context.Context, item models.OptionItem) (models.OptionItem, error) {
	var zero models.OptionItem

	next, err := s.NextSortOrder(ctx, s.group(item))
	if err != nil {
		return zero, err
	}
	item.SortOrder = next

	return s.SequencedCollection.InsertOne(ctx, item)
}

// UpdateById sửa lựa chọn. Đổi type (khi type là trường nhóm) re-append
// vào cuối nhóm mới và normalize nhóm cũ.
func (s *OptionService) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (models.OptionItem, error) {
	var zero models.OptionItem

	update, err := basesvc.ToUpdateData(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	if s.groupField != "" {
		if newType, ok := update.Set["type"].(string); ok && newType != current.Type {
			next, err := s.NextSortOrder(ctx, newType)
			if err != nil {
				return zero, err
			}
			update.Set["sortOrder"] = next
		}
	}

	updated, err := s.SequencedCollection.UpdateById(ctx, id, update)
	if err != nil {
		return zero, err
	}

	if s.groupField != "" && updated.Type != current.Type {
		if err := s.Normalize(ctx, current.Type); err != nil {
			return zero, err
		}
	}

	return updated, nil
}

// DeleteById xóa lựa chọn rồi dồn lại sortOrder của nhóm.
func (s *OptionService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}

	if err := s.SequencedCollection.DeleteById(ctx, id); err != nil {
		return err
	}

	return s.Normalize(ctx, s.group(current))
}
