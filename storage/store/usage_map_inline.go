package store

import (
	"github.com/juju/errors"

	"github.com/jetstoredb/jetstore/logger"
	"github.com/jetstoredb/jetstore/util"
)

// inlineHandler backs a usage map whose bitmap is written inline in the
// declaration row itself. The table has a fixed byte capacity and a start
// page that anchors bit 0; the window it covers slides forward over the
// object's lifetime.
//
// The slide semantics are asymmetric on purpose. An inline map commonly
// tracks free pages: sliding forward while removing assumes every skipped
// page is presently allocated, so the new window starts fully set; sliding
// forward while adding assumes the opposite and starts empty.
type inlineHandler struct {
	m *UsageMap
}

func newInlineHandler(m *UsageMap, declBuff []byte) (*inlineHandler, error) {
	startPage := util.ReadB4Byte2Int32(declBuff[m.rowStart+1 : m.rowStart+5])
	m.processMap(declBuff[m.startOffset:m.rowEnd], 0, startPage)
	return &inlineHandler{m: m}, nil
}

func (h *inlineHandler) addOrRemovePageNumber(pageNumber int32, add bool) error {
	m := h.m
	startPage := m.startPage
	if add && pageNumber < startPage {
		return &PageBelowWindowError{PageNumber: pageNumber, StartPage: startPage}
	}
	relativePageNumber := int(pageNumber - startPage)

	return m.usePage(m.dataPageNum, func(buff []byte) error {
		tableBits := m.format.UsageMapTableByteLength * 8
		if (!add && !m.pageNumbers.Get(relativePageNumber)) ||
			(add && relativePageNumber > tableBits-1) {
			// Slide the window: the new start page becomes the page being
			// touched and the whole table is rewritten.
			startPage = pageNumber
			m.startPage = startPage
			copy(buff[m.rowStart+1:m.rowStart+5], util.ConvertInt4Bytes(startPage))
			m.pageNumbers.ClearAll()
			fill := byte(0x00)
			if !add {
				fill = 0xff
				m.pageNumbers.SetRange(0, tableBits)
			}
			for j := 0; j < m.format.UsageMapTableByteLength; j++ {
				buff[m.startOffset+j] = fill
			}
			if err := m.channel.WritePage(buff, m.dataPageNum); err != nil {
				return errors.Annotatef(err, "writing usage map declaration page %d", m.dataPageNum)
			}
			relativePageNumber = 0
			logger.Debugf("inline usage map slid window to start page %d", startPage)
		}
		m.updateMap(pageNumber, int32(relativePageNumber), buff, add)
		if err := m.channel.WritePage(buff, m.dataPageNum); err != nil {
			return errors.Annotatef(err, "writing usage map declaration page %d", m.dataPageNum)
		}
		return nil
	})
}

func (h *inlineHandler) promote(pageNumber int32) error {
	return errors.Trace(ErrPromotionNotSupported)
}
