package basesvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hanguan2025/my-order-admin/internal/common"
)

func seqItems(orders ...int64) []SequenceItem {
	items := make([]SequenceItem, len(orders))
	for i, o := range orders {
		items[i] = SequenceItem{ID: primitive.NewObjectID(), SortOrder: o}
	}
	return items
}

func planAsMap(ops []ReorderOp) map[primitive.ObjectID]int64 {
	m := make(map[primitive.ObjectID]int64, len(ops))
	for _, op := range ops {
		m[op.ID] = op.NewOrder
	}
	return m
}

// applyPlan trả về thứ tự id sau khi áp kế hoạch lên items
func applyPlan(items []SequenceItem, ops []ReorderOp) []primitive.ObjectID {
	final := make(map[primitive.ObjectID]int64, len(items))
	for _, item := range items {
		final[item.ID] = item.SortOrder
	}
	for _, op := range ops {
		final[op.ID] = op.NewOrder
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	// insertion sort theo sortOrder mới, giữ thứ tự cũ khi bằng nhau
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && final[ids[j]] < final[ids[j-1]]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

func TestBuildReorderPlan_MoveBeforeTarget(t *testing.T) {
	items := seqItems(0, 1, 2)

	// Kéo item cuối lên trước item đầu
	ops, err := BuildReorderPlan(items, items[2].ID, items[0].ID, false)
	require.NoError(t, err)

	m := planAsMap(ops)
	assert.Equal(t, int64(0), m[items[2].ID])
	assert.Equal(t, int64(1), m[items[0].ID])
	assert.Equal(t, int64(2), m[items[1].ID])
}

func TestBuildReorderPlan_MoveAfterTarget(t *testing.T) {
	items := seqItems(0, 1, 2)

	// Kéo item đầu xuống sau item cuối
	ops, err := BuildReorderPlan(items, items[0].ID, items[2].ID, true)
	require.NoError(t, err)

	m := planAsMap(ops)
	assert.Equal(t, int64(2), m[items[0].ID])
	assert.Equal(t, int64(0), m[items[1].ID])
	assert.Equal(t, int64(1), m[items[2].ID])
}

func TestBuildReorderPlan_ContiguousFromArbitraryOrders(t *testing.T) {
	// sortOrder ban đầu tùy ý: trùng và đứt quãng
	items := seqItems(3, 3, 7, 100, 100)

	ops, err := BuildReorderPlan(items, items[4].ID, items[1].ID, false)
	require.NoError(t, err)

	// Sau reorder, sortOrder của cả nhóm là đúng {0..n-1}, mỗi giá trị một lần
	final := planAsMap(ops)
	for _, item := range items {
		if _, changed := final[item.ID]; !changed {
			final[item.ID] = item.SortOrder
		}
	}
	seen := make(map[int64]bool)
	for _, order := range final {
		assert.False(t, seen[order], "sortOrder %d bị gán hai lần", order)
		seen[order] = true
	}
	for i := int64(0); i < int64(len(items)); i++ {
		assert.True(t, seen[i], "thiếu sortOrder %d", i)
	}
}

func TestBuildReorderPlan_PreservesRelativeOrderOfOthers(t *testing.T) {
	items := seqItems(0, 1, 2, 3, 4)

	ops, err := BuildReorderPlan(items, items[3].ID, items[1].ID, false)
	require.NoError(t, err)

	ids := applyPlan(items, ops)
	// items[3] được chèn trước items[1]; các item còn lại giữ nguyên thứ tự tương đối
	expected := []primitive.ObjectID{items[0].ID, items[3].ID, items[1].ID, items[2].ID, items[4].ID}
	assert.Equal(t, expected, ids)
}

func TestBuildReorderPlan_SameIDIsNoop(t *testing.T) {
	items := seqItems(0, 1, 2)

	ops, err := BuildReorderPlan(items, items[1].ID, items[1].ID, false)
	require.NoError(t, err)
	assert.Empty(t, ops, "reorder(id, id) không được thay đổi sortOrder nào")

	ops, err = BuildReorderPlan(items, items[1].ID, items[1].ID, true)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestBuildReorderPlan_UnknownIDs(t *testing.T) {
	items := seqItems(0, 1)

	_, err := BuildReorderPlan(items, primitive.NewObjectID(), items[0].ID, false)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = BuildReorderPlan(items, items[0].ID, primitive.NewObjectID(), false)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBuildReorderPlan_EmptyGroup(t *testing.T) {
	_, err := BuildReorderPlan(nil, primitive.NewObjectID(), primitive.NewObjectID(), false)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBuildReorderPlan_OnlyChangedItemsInPlan(t *testing.T) {
	items := seqItems(0, 1, 2, 3)

	// Hoán đổi hai item cuối: hai item đầu đã đúng sortOrder, không vào kế hoạch
	ops, err := BuildReorderPlan(items, items[3].ID, items[2].ID, false)
	require.NoError(t, err)

	m := planAsMap(ops)
	assert.Len(t, ops, 2)
	assert.NotContains(t, m, items[0].ID)
	assert.NotContains(t, m, items[1].ID)
	assert.Equal(t, int64(2), m[items[3].ID])
	assert.Equal(t, int64(3), m[items[2].ID])
}

// recordingCommit ghi lại từng lần commit được gọi, thất bại khi fail=true
type recordingCommit struct {
	calls [][]ReorderOp
	fail  bool
}

func (rc *recordingCommit) commit(_ context.Context, ops []ReorderOp) error {
	rc.calls = append(rc.calls, ops)
	if rc.fail {
		return common.ErrTransaction
	}
	return nil
}

func TestApplyReorder_FailedCommitLeavesOrderUntouched(t *testing.T) {
	items := seqItems(0, 1, 2, 3)
	before := make([]SequenceItem, len(items))
	copy(before, items)

	rc := &recordingCommit{fail: true}
	s := &SequencedCollection[struct{}]{commit: rc.commit}

	// Kéo item cuối lên đầu nhóm, commit thất bại
	err := s.applyReorder(context.Background(), items, items[3].ID, items[0].ID, false)
	assert.Equal(t, common.ErrTransaction, err)

	// Commit là writer duy nhất: đúng một lần gọi, mang trọn kế hoạch —
	// thất bại nghĩa là không sortOrder nào được ghi một phần
	require.Len(t, rc.calls, 1)
	assert.Len(t, rc.calls[0], 4)

	// Nhóm đã nạp không bị sửa tại chỗ
	assert.Equal(t, before, items)
}

func TestApplyReorder_SuccessfulCommitCarriesWholePlan(t *testing.T) {
	items := seqItems(0, 1, 2)

	rc := &recordingCommit{}
	s := &SequencedCollection[struct{}]{commit: rc.commit}

	require.NoError(t, s.applyReorder(context.Background(), items, items[2].ID, items[0].ID, false))
	require.Len(t, rc.calls, 1)

	final := planAsMap(rc.calls[0])
	assert.Equal(t, int64(0), final[items[2].ID])
	assert.Equal(t, int64(1), final[items[0].ID])
	assert.Equal(t, int64(2), final[items[1].ID])
}

func TestApplyReorder_NoopPlanSkipsCommit(t *testing.T) {
	items := seqItems(0, 1, 2)

	rc := &recordingCommit{}
	s := &SequencedCollection[struct{}]{commit: rc.commit}

	require.NoError(t, s.applyReorder(context.Background(), items, items[1].ID, items[1].ID, true))
	assert.Empty(t, rc.calls)
}
