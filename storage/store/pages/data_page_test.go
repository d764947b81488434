package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetstoredb/jetstore/storage/store/common"
)

func TestDataPageRowDirectory(t *testing.T) {
	format := common.FormatV4
	page := NewDataPage(format)
	assert.Equal(t, common.PAGE_TYPE_DATA, page[0])
	assert.Equal(t, 0, RowCount(page, format))

	first := make([]byte, 20)
	first[0] = 0xAA
	rowNum, err := AppendRow(page, first, format)
	require.NoError(t, err)
	assert.Equal(t, 0, rowNum)
	assert.Equal(t, 1, RowCount(page, format))

	second := make([]byte, 32)
	rowNum, err = AppendRow(page, second, format)
	require.NoError(t, err)
	assert.Equal(t, 1, rowNum)

	// Row 0 runs to the page boundary; row 1 packs just below it.
	start0, err := FindRowStart(page, 0, format)
	require.NoError(t, err)
	end0, err := FindRowEnd(page, 0, format)
	require.NoError(t, err)
	assert.Equal(t, format.PageSize, end0)
	assert.Equal(t, format.PageSize-20, start0)
	assert.Equal(t, byte(0xAA), page[start0])

	start1, err := FindRowStart(page, 1, format)
	require.NoError(t, err)
	end1, err := FindRowEnd(page, 1, format)
	require.NoError(t, err)
	assert.Equal(t, start0, end1)
	assert.Equal(t, start0-32, start1)
}

func TestDataPageMissingRow(t *testing.T) {
	format := common.FormatV4
	page := NewDataPage(format)

	_, err := FindRowStart(page, 0, format)
	require.Error(t, err)
	_, err = FindRowEnd(page, 0, format)
	require.Error(t, err)

	_, err = AppendRow(page, make([]byte, 4), format)
	require.NoError(t, err)
	_, err = FindRowStart(page, 1, format)
	require.Error(t, err)
}

func TestDataPageFull(t *testing.T) {
	format := common.FormatV4
	page := NewDataPage(format)
	_, err := AppendRow(page, make([]byte, format.PageSize), format)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page full")
}
