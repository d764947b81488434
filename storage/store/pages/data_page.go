package pages

import (
	"github.com/juju/errors"

	"github.com/jetstoredb/jetstore/storage/store/common"
	"github.com/jetstoredb/jetstore/util"
)

// Data pages carry variable-length rows located through a row directory in
// the page header: a 2-byte row count followed by one 2-byte offset entry
// per row. Row bodies are packed from the end of the page downwards, so
// row 0 ends at the page boundary and row n ends where row n-1 starts.
//
// Usage map declarations are ordinary rows on such pages, sharing the page
// with whatever else lives there.

// NewDataPage returns an empty data page buffer with a zeroed row
// directory.
func NewDataPage(format *common.Format) []byte {
	var buff = util.AppendByte(format.PageSize)
	buff[0] = common.PAGE_TYPE_DATA
	buff[1] = 0x01
	return buff
}

// RowCount reads the number of rows on the page.
func RowCount(buff []byte, format *common.Format) int {
	return int(util.ReadUB2Byte2UInt16(buff[format.OffsetRowCount : format.OffsetRowCount+2]))
}

// FindRowStart returns the byte offset at which the given row begins.
func FindRowStart(buff []byte, rowNum int, format *common.Format) (int, error) {
	if rowNum < 0 || rowNum >= RowCount(buff, format) {
		return 0, errors.Errorf("row %d not found, page has %d rows", rowNum, RowCount(buff, format))
	}
	entryOffset := format.OffsetRowStart + 2*rowNum
	raw := util.ReadUB2Byte2UInt16(buff[entryOffset : entryOffset+2])
	return int(raw) & common.ROW_OFFSET_MASK, nil
}

// FindRowEnd returns the byte offset just past the given row.
func FindRowEnd(buff []byte, rowNum int, format *common.Format) (int, error) {
	if rowNum == 0 {
		if RowCount(buff, format) == 0 {
			return 0, errors.Errorf("row 0 not found, page is empty")
		}
		return format.PageSize, nil
	}
	return FindRowStart(buff, rowNum-1, format)
}

// AppendRow places a row into the page's free space and registers it in
// the row directory, returning the new row number.
func AppendRow(buff []byte, row []byte, format *common.Format) (int, error) {
	rowCount := RowCount(buff, format)
	rowEnd := format.PageSize
	if rowCount > 0 {
		var err error
		rowEnd, err = FindRowStart(buff, rowCount-1, format)
		if err != nil {
			return 0, errors.Trace(err)
		}
	}
	rowStart := rowEnd - len(row)
	directoryEnd := format.OffsetRowStart + 2*(rowCount+1)
	if rowStart < directoryEnd {
		return 0, errors.Errorf("page full: row of %d bytes does not fit", len(row))
	}
	copy(buff[rowStart:rowEnd], row)
	entryOffset := format.OffsetRowStart + 2*rowCount
	copy(buff[entryOffset:entryOffset+2], util.ConvertUInt2Bytes(uint16(rowStart)))
	copy(buff[format.OffsetRowCount:format.OffsetRowCount+2], util.ConvertUInt2Bytes(uint16(rowCount+1)))
	return rowCount, nil
}
