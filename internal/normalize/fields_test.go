package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableFieldName(t *testing.T) {
	name, ok := TableFieldName("売買価格")
	assert.True(t, ok)
	assert.Equal(t, FieldSalePrice, name)

	name, ok = TableFieldName("物件所在地")
	assert.True(t, ok)
	assert.Equal(t, FieldLocation, name)

	name, ok = TableFieldName("参照URL")
	assert.True(t, ok)
	assert.Equal(t, FieldReferenceURL, name)

	_, ok = TableFieldName("未知のヘッダ")
	assert.False(t, ok)
}

func TestPropertyTypeName(t *testing.T) {
	name, ok := PropertyTypeName("中古一戸建て")
	assert.True(t, ok)
	assert.Equal(t, "Used Detached House", name)

	_, ok = PropertyTypeName("別荘")
	assert.False(t, ok)
}

func TestAreaLabelName(t *testing.T) {
	name, ok := AreaLabelName("間取り")
	assert.True(t, ok)
	assert.Equal(t, FieldLayout, name)

	name, ok = AreaLabelName("土地面積")
	assert.True(t, ok)
	assert.Equal(t, FieldLandArea, name)

	_, ok = AreaLabelName("駅徒歩")
	assert.False(t, ok)
}
