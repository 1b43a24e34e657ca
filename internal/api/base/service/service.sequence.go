package basesvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hanguan2025/my-order-admin/internal/common"
)

// SequenceItem mô tả một document có thứ tự hiển thị trong một nhóm.
// Group là giá trị của trường nhóm (ví dụ category), rỗng nếu collection
// không chia nhóm.
type SequenceItem struct {
	ID        primitive.ObjectID
	SortOrder int64
	Group     string
}

// ReorderOp là một cập nhật sortOrder trong kế hoạch reorder.
type ReorderOp struct {
	ID       primitive.ObjectID
	NewOrder int64
}

// BuildReorderPlan tính kế hoạch cập nhật sortOrder khi kéo một item đến
// vị trí của item khác trong cùng nhóm: movedID được rút khỏi vị trí hiện
// tại và chèn lại ngay trước (placeAfter=false) hoặc ngay sau
// (placeAfter=true) targetID.
//
// items phải là các item CÙNG NHÓM, đã sắp theo thứ tự chuẩn
// (sortOrder tăng dần, _id tăng dần khi trùng sortOrder).
// Kế hoạch trả về gán lại sortOrder liên tục 0..n-1 theo hoán vị mới,
// chỉ chứa các item có sortOrder thay đổi — nhờ đó sortOrder trùng hoặc
// đứt quãng còn sót từ dữ liệu cũ cũng được sửa. movedID == targetID là
// no-op (kế hoạch rỗng). Thứ tự tương đối của các item còn lại không đổi.
func BuildReorderPlan(items []SequenceItem, movedID primitive.ObjectID, targetID primitive.ObjectID, placeAfter bool) ([]ReorderOp, error) {
	if len(items) == 0 {
		return nil, common.ErrNotFound
	}
	if movedID == targetID {
		return nil, nil
	}

	movedIdx := -1
	for i, item := range items {
		if item.ID == movedID {
			movedIdx = i
			break
		}
	}
	if movedIdx < 0 {
		return nil, common.ErrNotFound
	}

	// Rút moved ra khỏi dãy rồi tìm target trong dãy còn lại
	remaining := make([]SequenceItem, 0, len(items)-1)
	remaining = append(remaining, items[:movedIdx]...)
	remaining = append(remaining, items[movedIdx+1:]...)

	targetIdx := -1
	for i, item := range remaining {
		if item.ID == targetID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, common.ErrNotFound
	}

	insertAt := targetIdx
	if placeAfter {
		insertAt = targetIdx + 1
	}

	reordered := make([]SequenceItem, 0, len(items))
	reordered = append(reordered, remaining[:insertAt]...)
	reordered = append(reordered, items[movedIdx])
	reordered = append(reordered, remaining[insertAt:]...)

	var ops []ReorderOp
	for i, item := range reordered {
		if item.SortOrder != int64(i) {
			ops = append(ops, ReorderOp{ID: item.ID, NewOrder: int64(i)})
		}
	}
	return ops, nil
}

// reorderCommitFunc ghi một kế hoạch reorder xuống DB. Tách ra để test
// có thể thay bằng commit giả.
type reorderCommitFunc func(ctx context.Context, ops []ReorderOp) error

// SequencedCollection bọc BaseServiceMongoImpl cho các collection có
// trường sortOrder (menu, mains, extras). Reorder được ghi trong một
// transaction với ordered BulkWrite: hoặc tất cả sortOrder mới được ghi,
// hoặc không có gì thay đổi.
type SequencedCollection[T any] struct {
	*BaseServiceMongoImpl[T]
	client     *mongo.Client
	groupField string // bson key của trường nhóm, rỗng = cả collection một nhóm
	commit     reorderCommitFunc
}

// NewSequencedCollection tạo SequencedCollection trên collection cho trước.
// groupField là bson key của trường nhóm ("category" cho menu, rỗng cho
// mains/extras).
func NewSequencedCollection[T any](client *mongo.Client, collection *mongo.Collection, groupField string) *SequencedCollection[T] {
	s := &SequencedCollection[T]{
		BaseServiceMongoImpl: NewBaseServiceMongo[T](collection),
		client:               client,
		groupField:           groupField,
	}
	s.commit = s.commitTransactional
	return s
}

// groupFilter trả về filter giới hạn trong một nhóm
func (s *SequencedCollection[T]) groupFilter(group string) bson.M {
	if s.groupField == "" {
		return bson.M{}
	}
	return bson.M{s.groupField: group}
}

// loadGroup đọc các item của một nhóm theo thứ tự chuẩn
// (sortOrder tăng dần, _id tăng dần khi trùng)
func (s *SequencedCollection[T]) loadGroup(ctx context.Context, group string) ([]SequenceItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1, "sortOrder": 1})

	cursor, err := s.Collection().Find(ctx, s.groupFilter(group), opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var items []SequenceItem
	for cursor.Next(ctx) {
		var doc struct {
			ID        primitive.ObjectID `bson:"_id"`
			SortOrder int64              `bson:"sortOrder"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.ConvertMongoError(err)
		}
		items = append(items, SequenceItem{ID: doc.ID, SortOrder: doc.SortOrder, Group: group})
	}
	if err := cursor.Err(); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return items, nil
}

// resolveGroup đọc giá trị trường nhóm của một document
func (s *SequencedCollection[T]) resolveGroup(ctx context.Context, id primitive.ObjectID) (string, error) {
	if s.groupField == "" {
		// Kiểm tra tồn tại
		count, err := s.Collection().CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return "", common.ConvertMongoError(err)
		}
		if count == 0 {
			return "", common.ErrNotFound
		}
		return "", nil
	}

	var doc bson.M
	err := s.Collection().FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{s.groupField: 1})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", common.ErrNotFound
		}
		return "", common.ConvertMongoError(err)
	}
	group, _ := doc[s.groupField].(string)
	return group, nil
}

// Reorder rút movedID khỏi vị trí hiện tại và chèn lại ngay trước/sau
// targetID trong cùng nhóm. Hai id thuộc nhóm khác nhau bị từ chối.
// Mọi sortOrder bị ảnh hưởng được ghi trong MỘT transaction.
func (s *SequencedCollection[T]) Reorder(ctx context.Context, movedID primitive.ObjectID, targetID primitive.ObjectID, placeAfter bool) error {
	movedGroup, err := s.resolveGroup(ctx, movedID)
	if err != nil {
		return err
	}
	if movedID != targetID {
		targetGroup, err := s.resolveGroup(ctx, targetID)
		if err != nil {
			return err
		}
		if targetGroup != movedGroup {
			return common.ErrReorderOutOfGroup
		}
	}

	items, err := s.loadGroup(ctx, movedGroup)
	if err != nil {
		return err
	}

	return s.applyReorder(ctx, items, movedID, targetID, placeAfter)
}

// applyReorder build kế hoạch trên nhóm đã nạp và ghi toàn bộ qua MỘT lần
// commit. Commit thất bại → lỗi trả về nguyên vẹn, không có write nào khác
// được phát ra nên sortOrder của nhóm giữ nguyên.
func (s *SequencedCollection[T]) applyReorder(ctx context.Context, items []SequenceItem, movedID primitive.ObjectID, targetID primitive.ObjectID, placeAfter bool) error {
	ops, err := BuildReorderPlan(items, movedID, targetID, placeAfter)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	return s.commit(ctx, ops)
}

// Normalize gán lại sortOrder liên tục 0..n-1 cho một nhóm theo thứ tự chuẩn.
// Dùng khi migrate dữ liệu cũ có sortOrder trùng hoặc đứt quãng, và sau khi
// xóa item khỏi nhóm.
func (s *SequencedCollection[T]) Normalize(ctx context.Context, group string) error {
	items, err := s.loadGroup(ctx, group)
	if err != nil {
		return err
	}

	var ops []ReorderOp
	for i, item := range items {
		if item.SortOrder != int64(i) {
			ops = append(ops, ReorderOp{ID: item.ID, NewOrder: int64(i)})
		}
	}
	if len(ops) == 0 {
		return nil
	}

	return s.commit(ctx, ops)
}

// NextSortOrder trả về sortOrder cho item mới thêm vào nhóm
// (bằng số item hiện có, tức là xếp cuối)
func (s *SequencedCollection[T]) NextSortOrder(ctx context.Context, group string) (int64, error) {
	count, err := s.Collection().CountDocuments(ctx, s.groupFilter(group))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// commitTransactional ghi kế hoạch reorder bằng ordered BulkWrite trong
// một session transaction. Transaction thất bại thì không document nào
// bị thay đổi.
func (s *SequencedCollection[T]) commitTransactional(ctx context.Context, ops []ReorderOp) error {
	models := make([]mongo.WriteModel, 0, len(ops))
	for _, op := range ops {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": op.ID}).
			SetUpdate(bson.M{"$set": bson.M{"sortOrder": op.NewOrder}}))
	}

	bulkOpts := options.BulkWrite().SetOrdered(true)

	session, err := s.client.StartSession()
	if err != nil {
		return common.NewError(common.ErrCodeDatabaseQuery,
			common.MsgDatabaseError, common.StatusInternalServerError, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return s.Collection().BulkWrite(sessCtx, models, bulkOpts)
	})
	if err != nil {
		return common.NewError(common.ErrCodeDatabaseQuery,
			"Reorder thất bại, không có thay đổi nào được ghi", common.StatusInternalServerError, err)
	}
	return nil
}
