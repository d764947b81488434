package store

import (
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/jetstoredb/jetstore/logger"
	"github.com/jetstoredb/jetstore/storage/store/common"
	"github.com/jetstoredb/jetstore/storage/store/pages"
	"github.com/jetstoredb/jetstore/util"
)

// Usage map encoding tags, byte 0 of the declaration row.
const (
	MAP_TYPE_INLINE    byte = 0x0
	MAP_TYPE_REFERENCE byte = 0x1
)

// UsageMap tracks which pages of the file belong to one table or index.
// The bitmap lives on disk, either inline in the declaration row or spread
// across dedicated segment pages; pageNumbers mirrors it bit for bit.
//
// A UsageMap is not safe for concurrent use. Callers serialize add/remove
// per map and make sure no two maps are open over the same declaration.
type UsageMap struct {
	channel PageChannel
	format  *common.Format

	// Declaration row location.
	dataPageNum int32
	rowStart    int
	rowEnd      int

	// startOffset is where bitmap payload bytes begin inside whichever
	// buffer currently backs the map: inside the declaration page for
	// inline maps, inside a segment page for reference maps.
	startOffset int

	// startPage is the absolute page that bit 0 represents. Always 0 for
	// reference maps, whose bit offsets are absolute.
	startPage int32

	pageNumbers *BitIndex

	// modCount bumps once per successful add or remove; iterators use it
	// to notice mutation between steps.
	modCount int

	handler mapHandler

	// strictAdd turns the duplicate-add sanity check into a hard error.
	strictAdd bool

	// scratch stages the one backing page a mutation touches. Its
	// contents are only valid inside a single usePage call.
	scratch []byte
}

// mapHandler is the encoding-specific half of a usage map. The two
// implementations share nothing beyond the outer dispatch and the bit
// index.
type mapHandler interface {
	addOrRemovePageNumber(pageNumber int32, add bool) error
	promote(pageNumber int32) error
}

type Option func(m *UsageMap)

// WithStrictAdd makes AddPageNumber fail when the page is already present
// or below the map's window, instead of only logging at debug level.
func WithStrictAdd(strict bool) Option {
	return func(m *UsageMap) {
		m.strictAdd = strict
	}
}

// ReadUsageMap reads the declaration row rowNum on page pageNum and builds
// the matching usage map encoding over it.
func ReadUsageMap(channel PageChannel, pageNum int32, rowNum int, format *common.Format, opts ...Option) (*UsageMap, error) {
	declBuff := util.AppendByte(format.PageSize)
	if err := channel.ReadPage(declBuff, pageNum); err != nil {
		return nil, errors.Annotatef(err, "reading usage map declaration page %d", pageNum)
	}
	rowStart, err := pages.FindRowStart(declBuff, rowNum, format)
	if err != nil {
		return nil, errors.Trace(err)
	}
	rowEnd, err := pages.FindRowEnd(declBuff, rowNum, format)
	if err != nil {
		return nil, errors.Trace(err)
	}

	m := &UsageMap{
		channel:     channel,
		format:      format,
		dataPageNum: pageNum,
		rowStart:    rowStart,
		rowEnd:      rowEnd,
		startOffset: rowStart + format.OffsetMapStart,
		pageNumbers: NewBitIndex(),
	}
	for _, opt := range opts {
		opt(m)
	}

	mapType := declBuff[rowStart]
	switch mapType {
	case MAP_TYPE_INLINE:
		m.handler, err = newInlineHandler(m, declBuff)
	case MAP_TYPE_REFERENCE:
		m.handler, err = newReferenceHandler(m, declBuff)
	default:
		return nil, &UnknownMapTypeError{MapType: mapType}
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	if logger.IsDebugEnabled() {
		logger.Debugf("read usage map type %d at page %d row %d: %s", mapType, pageNum, rowNum, m)
	}
	return m, nil
}

// AddPageNumber records a page as belonging to this map's object.
func (m *UsageMap) AddPageNumber(pageNumber int32) error {
	if m.strictAdd {
		pageNumberOffset := int(pageNumber - m.startPage)
		if pageNumberOffset < 0 || m.pageNumbers.Get(pageNumberOffset) {
			return errors.Errorf("page number %d already in usage map", pageNumber)
		}
	}
	if err := m.handler.addOrRemovePageNumber(pageNumber, true); err != nil {
		return errors.Trace(err)
	}
	m.modCount++
	return nil
}

// RemovePageNumber drops a page from this map's object.
func (m *UsageMap) RemovePageNumber(pageNumber int32) error {
	if err := m.handler.addOrRemovePageNumber(pageNumber, false); err != nil {
		return errors.Trace(err)
	}
	m.modCount++
	return nil
}

// Promote converts the map to the reference encoding so it can track pages
// past the inline capacity. Unsupported for now: the conversion policy is
// an open product question.
func (m *UsageMap) Promote(pageNumber int32) error {
	return m.handler.promote(pageNumber)
}

// StartPage is the absolute page that bit 0 currently represents.
func (m *UsageMap) StartPage() int32 {
	return m.startPage
}

// DataPageNumber is the page holding this map's declaration row.
func (m *UsageMap) DataPageNumber() int32 {
	return m.dataPageNum
}

// Iterator walks the tracked pages in ascending order.
func (m *UsageMap) Iterator() *ForwardPageIterator {
	return newForwardPageIterator(m)
}

// ReverseIterator walks the tracked pages in descending order.
func (m *UsageMap) ReverseIterator() *ReversePageIterator {
	return newReversePageIterator(m)
}

func (m *UsageMap) String() string {
	var sb strings.Builder
	sb.WriteString("page numbers: [")
	for iter := m.Iterator(); iter.HasNextPage(); {
		sb.WriteString(strconv.Itoa(int(iter.GetNextPage())))
		if iter.HasNextPage() {
			sb.WriteString(", ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// usePage stages the given page in the map's scratch buffer and runs fn
// over it. The buffer contents are only valid until fn returns; nothing
// may retain or alias them across calls.
func (m *UsageMap) usePage(pageNumber int32, fn func(buff []byte) error) error {
	if m.scratch == nil {
		m.scratch = util.AppendByte(m.format.PageSize)
	}
	if err := m.channel.ReadPage(m.scratch, pageNumber); err != nil {
		return errors.Annotatef(err, "reading page %d", pageNumber)
	}
	return fn(m.scratch)
}

// processMap decodes bitmap payload bytes into the bit index. pageIndex
// places the bits at the right segment base for reference maps; inline
// maps pass 0.
func (m *UsageMap) processMap(payload []byte, pageIndex int, startPage int32) {
	m.startPage = startPage
	for byteCount, b := range payload {
		if b == 0 {
			continue
		}
		for i := 0; i < 8; i++ {
			if b&(1<<uint(i)) != 0 {
				m.pageNumbers.Set(byteCount*8 + i + pageIndex*m.format.PagesPerUsageMapPage)
			}
		}
	}
}

// updateMap flips one bit in the staged backing page and keeps the bit
// index in step. The caller persists the buffer.
func (m *UsageMap) updateMap(absolutePageNumber, relativePageNumber int32, buff []byte, add bool) {
	offset := int(relativePageNumber) / 8
	bitmask := byte(1) << (uint(relativePageNumber) % 8)
	b := buff[m.startOffset+offset]
	pageNumberOffset := int(absolutePageNumber - m.startPage)
	if add {
		b |= bitmask
		m.pageNumbers.Set(pageNumberOffset)
	} else {
		b &^= bitmask
		m.pageNumbers.Clear(pageNumberOffset)
	}
	buff[m.startOffset+offset] = b
}

// NewInlineMapDeclaration builds the declaration row bytes of an empty
// inline usage map anchored at startPage, ready to be appended to a data
// page.
func NewInlineMapDeclaration(format *common.Format, startPage int32) []byte {
	row := util.AppendByte(format.OffsetMapStart + format.UsageMapTableByteLength)
	row[0] = MAP_TYPE_INLINE
	copy(row[1:5], util.ConvertInt4Bytes(startPage))
	return row
}

// NewReferenceMapDeclaration builds the declaration row bytes of an empty
// reference usage map with no segment pages yet.
func NewReferenceMapDeclaration(format *common.Format) []byte {
	row := util.AppendByte(format.OffsetReferenceMapPageNumbers + 4*format.ReferenceSlotCount)
	row[0] = MAP_TYPE_REFERENCE
	return row
}
