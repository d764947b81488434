package store

import (
	"github.com/juju/errors"

	"github.com/jetstoredb/jetstore/logger"
	"github.com/jetstoredb/jetstore/storage/store/common"
	"github.com/jetstoredb/jetstore/storage/store/pages"
	"github.com/jetstoredb/jetstore/util"
)

// referenceHandler backs a usage map whose bitmap spans one or more whole
// segment pages. The declaration row holds a table of 4-byte pointers to
// them, zero meaning the segment was never materialized. Segment pages are
// created lazily on the first add that lands in them and are never
// reclaimed afterwards.
type referenceHandler struct {
	m *UsageMap
}

func newReferenceHandler(m *UsageMap, declBuff []byte) (*referenceHandler, error) {
	// There is no start page for a reference map; bit offsets are
	// absolute and the payload offset inside a segment page is fixed.
	m.startOffset = m.format.OffsetUsageMapPageData
	m.startPage = 0

	h := &referenceHandler{m: m}
	for i := 0; i < m.format.ReferenceSlotCount; i++ {
		offset := h.mapPagePointerOffset(i)
		mapPageNum := util.ReadB4Byte2Int32(declBuff[offset : offset+4])
		if mapPageNum <= 0 {
			continue
		}
		pageIndex := i
		err := m.usePage(mapPageNum, func(buff []byte) error {
			if pageType := buff[0]; pageType != common.PAGE_TYPE_USAGE_MAP {
				return &CorruptPageTypeError{PageNumber: mapPageNum, PageType: pageType}
			}
			m.processMap(buff[m.startOffset:], pageIndex, 0)
			return nil
		})
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	return h, nil
}

func (h *referenceHandler) addOrRemovePageNumber(pageNumber int32, add bool) error {
	m := h.m
	pageIndex := int(pageNumber) / m.format.PagesPerUsageMapPage
	if pageIndex < 0 || pageIndex >= m.format.ReferenceSlotCount {
		return errors.Errorf("page number %d is out of range for %d usage map slots",
			pageNumber, m.format.ReferenceSlotCount)
	}

	var mapPageNum int32
	err := m.usePage(m.dataPageNum, func(buff []byte) error {
		offset := h.mapPagePointerOffset(pageIndex)
		mapPageNum = util.ReadB4Byte2Int32(buff[offset : offset+4])
		return nil
	})
	if err != nil {
		return errors.Trace(err)
	}

	if mapPageNum <= 0 {
		if !add {
			// The segment was never materialized, so the bit is already
			// absent; nothing to clear.
			return nil
		}
		mapPageNum, err = h.createNewUsageMapPage(pageIndex)
		if err != nil {
			return errors.Trace(err)
		}
	}

	return m.usePage(mapPageNum, func(buff []byte) error {
		if pageType := buff[0]; pageType != common.PAGE_TYPE_USAGE_MAP {
			return &CorruptPageTypeError{PageNumber: mapPageNum, PageType: pageType}
		}
		relativePageNumber := pageNumber - int32(m.format.PagesPerUsageMapPage*pageIndex)
		m.updateMap(pageNumber, relativePageNumber, buff, add)
		if err := m.channel.WritePage(buff, mapPageNum); err != nil {
			return errors.Annotatef(err, "writing usage map page %d", mapPageNum)
		}
		return nil
	})
}

// createNewUsageMapPage materializes the segment page for pageIndex and
// records the pointer to it in the declaration row.
func (h *referenceHandler) createNewUsageMapPage(pageIndex int) (int32, error) {
	m := h.m
	mapPage := pages.NewUsageMapPage(m.format)
	mapPageNum, err := m.channel.AllocateNewPage(mapPage.GetSerializeBytes())
	if err != nil {
		return 0, errors.Annotatef(err, "allocating usage map page for slot %d", pageIndex)
	}
	err = m.usePage(m.dataPageNum, func(buff []byte) error {
		offset := h.mapPagePointerOffset(pageIndex)
		copy(buff[offset:offset+4], util.ConvertInt4Bytes(mapPageNum))
		if err := m.channel.WritePage(buff, m.dataPageNum); err != nil {
			return errors.Annotatef(err, "writing usage map declaration page %d", m.dataPageNum)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Trace(err)
	}
	logger.Debugf("created usage map page %d for slot %d", mapPageNum, pageIndex)
	return mapPageNum, nil
}

// mapPagePointerOffset locates slot pageIndex of the pointer table inside
// the declaration page.
func (h *referenceHandler) mapPagePointerOffset(pageIndex int) int {
	return h.m.rowStart + h.m.format.OffsetReferenceMapPageNumbers + pageIndex*4
}

func (h *referenceHandler) promote(pageNumber int32) error {
	// Already the reference encoding.
	return nil
}
