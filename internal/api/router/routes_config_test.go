package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencedWriteConfig_OnlySequencedVerbs(t *testing.T) {
	cfg := SequencedWriteConfig

	// Các verb ghi mà service sắp xếp override
	assert.True(t, cfg.InsOne)
	assert.True(t, cfg.UpdById)
	assert.True(t, cfg.DelById)

	// Các verb ghi đi thẳng xuống base service, bỏ qua bookkeeping sortOrder
	assert.False(t, cfg.InsMany)
	assert.False(t, cfg.UpdOne)
	assert.False(t, cfg.UpdMany)
	assert.False(t, cfg.FindUpd)
	assert.False(t, cfg.Upsert)
	assert.False(t, cfg.DelOne)
	assert.False(t, cfg.DelMany)
	assert.False(t, cfg.FindDel)

	// Verb đọc giữ nguyên đầy đủ
	assert.True(t, cfg.Find)
	assert.True(t, cfg.FindOne)
	assert.True(t, cfg.FindById)
	assert.True(t, cfg.FindIds)
	assert.True(t, cfg.Paginate)
	assert.True(t, cfg.Count)
	assert.True(t, cfg.Distinct)
	assert.True(t, cfg.Exists)
}

func TestCRUDConfigs_WriteSurface(t *testing.T) {
	// ReadOnlyConfig không mở verb ghi nào
	ro := ReadOnlyConfig
	for name, enabled := range map[string]bool{
		"InsOne": ro.InsOne, "InsMany": ro.InsMany,
		"UpdOne": ro.UpdOne, "UpdMany": ro.UpdMany,
		"UpdById": ro.UpdById, "FindUpd": ro.FindUpd,
		"DelOne": ro.DelOne, "DelMany": ro.DelMany,
		"DelById": ro.DelById, "FindDel": ro.FindDel,
		"Upsert": ro.Upsert,
	} {
		assert.False(t, enabled, name)
	}

	// NoDeleteConfig mở ghi nhưng đóng mọi verb xóa và upsert
	nd := NoDeleteConfig
	assert.True(t, nd.InsOne)
	assert.True(t, nd.UpdById)
	assert.False(t, nd.DelOne)
	assert.False(t, nd.DelMany)
	assert.False(t, nd.DelById)
	assert.False(t, nd.FindDel)
	assert.False(t, nd.Upsert)

	// ReadWriteConfig mở đầy đủ
	rw := ReadWriteConfig
	assert.True(t, rw.InsMany)
	assert.True(t, rw.UpdMany)
	assert.True(t, rw.DelMany)
	assert.True(t, rw.Upsert)
}
