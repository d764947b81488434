package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetstoredb/jetstore/storage/store/common"
)

func TestUsageMapPageSerialize(t *testing.T) {
	format := common.FormatV4
	page := NewUsageMapPage(format)
	content := page.GetSerializeBytes()
	require.Len(t, content, format.PageSize)
	assert.Equal(t, common.PAGE_TYPE_USAGE_MAP, content[0])
	assert.Equal(t, byte(0x01), content[1])

	page.Bitmap[0] = 0x81
	parsed, err := ParseUsageMapPage(page.GetSerializeBytes(), format)
	require.NoError(t, err)
	assert.Equal(t, byte(0x81), parsed.Bitmap[0])
	assert.Len(t, parsed.Bitmap, format.PageSize-format.OffsetUsageMapPageData)
}

func TestParseUsageMapPageRejectsForeignTag(t *testing.T) {
	format := common.FormatV4
	content := NewUsageMapPage(format).GetSerializeBytes()
	content[0] = common.PAGE_TYPE_INDEX_LEAF

	_, err := ParseUsageMapPage(content, format)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected usage map page type")
}

func TestParseUsageMapPageRejectsShortBuffer(t *testing.T) {
	_, err := ParseUsageMapPage(make([]byte, 100), common.FormatV4)
	require.Error(t, err)
}
