package basehdl

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	menudto "github.com/hanguan2025/my-order-admin/internal/api/menu/dto"
	menumodels "github.com/hanguan2025/my-order-admin/internal/api/menu/models"
	orderdto "github.com/hanguan2025/my-order-admin/internal/api/order/dto"
	ordermodels "github.com/hanguan2025/my-order-admin/internal/api/order/models"
)

func boolPtr(b bool) *bool { return &b }

func TestCopyMatchingFields_OrderItemsReachModel(t *testing.T) {
	input := &orderdto.OrderCreateInput{
		TableNum: "A5",
		Items: []orderdto.LineItemInput{
			{
				Name:       "牛肉麵",
				Emoji:      "🍜",
				Main:       "細麵",
				Extras:     []orderdto.ExtraOptionInput{{Name: "加蛋", Price: 15}},
				FinalPrice: 195,
				Note:       "không hành",
			},
			{Name: "珍珠奶茶", FinalPrice: 60},
		},
		TotalAmount: 255,
	}

	var order ordermodels.Order
	require.NoError(t, copyMatchingFields(input, &order))

	// Slice DTO → slice model phải được copy từng phần tử, không bị bỏ qua
	require.Len(t, order.Items, 2)
	assert.Equal(t, "牛肉麵", order.Items[0].Name)
	assert.Equal(t, "細麵", order.Items[0].Main)
	assert.Equal(t, float64(195), order.Items[0].FinalPrice)
	assert.Equal(t, "không hành", order.Items[0].Note)

	// Slice lồng bên trong phần tử cũng được copy
	require.Len(t, order.Items[0].Extras, 1)
	assert.Equal(t, "加蛋", order.Items[0].Extras[0].Name)
	assert.Equal(t, float64(15), order.Items[0].Extras[0].Price)

	assert.Equal(t, "A5", order.TableNum)
	assert.Equal(t, float64(255), order.TotalAmount)
}

func TestCopyMatchingFields_PointerFlagsDereferenced(t *testing.T) {
	input := &menudto.MenuUpdateInput{
		AllowMain:   boolPtr(false),
		AllowExtras: boolPtr(true),
		Extras:      []menudto.MenuExtraInput{{Name: "加大", Price: 20}},
	}

	var item menumodels.MenuItem
	item.AllowMain = true // giá trị hiện có, client gửi false để tắt
	require.NoError(t, copyMatchingFields(input, &item))

	assert.False(t, item.AllowMain)
	assert.True(t, item.AllowExtras)
	require.Len(t, item.Extras, 1)
	assert.Equal(t, "加大", item.Extras[0].Name)
	assert.Equal(t, float64(20), item.Extras[0].Price)
}

func TestCopyMatchingFields_NilPointerLeavesModelUntouched(t *testing.T) {
	var item menumodels.MenuItem
	item.AllowNote = true

	require.NoError(t, copyMatchingFields(&menudto.MenuUpdateInput{}, &item))
	assert.True(t, item.AllowNote)
	assert.Nil(t, item.Extras)
}

func TestCopyMatchingFields_StringToObjectID(t *testing.T) {
	type refInput struct{ StaffID string }
	type refModel struct{ StaffID primitive.ObjectID }

	id := primitive.NewObjectID()
	var model refModel
	require.NoError(t, copyMatchingFields(&refInput{StaffID: id.Hex()}, &model))
	assert.Equal(t, id, model.StaffID)

	err := copyMatchingFields(&refInput{StaffID: "not-a-hex"}, &model)
	assert.Error(t, err)
}

func TestExplicitPointerFields_KeepsFalseInSet(t *testing.T) {
	input := &menudto.MenuUpdateInput{AllowMain: boolPtr(false)}

	set := explicitPointerFields(input, reflect.TypeOf(menumodels.MenuItem{}))

	// false là zero value nhưng client gửi rõ ràng qua pointer — phải vào $set
	require.Contains(t, set, "allowMain")
	assert.Equal(t, false, set["allowMain"])
	assert.NotContains(t, set, "allowExtras")
	assert.NotContains(t, set, "allowNote")
}

func TestParsePositiveInt(t *testing.T) {
	assert.Equal(t, int64(3), parsePositiveInt("3", 1))
	assert.Equal(t, int64(1), parsePositiveInt("", 1))
	assert.Equal(t, int64(1), parsePositiveInt("abc", 1))
	assert.Equal(t, int64(10), parsePositiveInt("0", 10))
	assert.Equal(t, int64(10), parsePositiveInt("-5", 10))
	assert.Equal(t, int64(10), parsePositiveInt("2.5", 10))
}
