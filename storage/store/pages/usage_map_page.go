package pages

import (
	"github.com/juju/errors"

	"github.com/jetstoredb/jetstore/storage/store/common"
)

// UsageMapPage is a dedicated full page holding one fixed-size slice of a
// reference usage map's bitmap. Layout:
//
//	byte 0      page type tag, always PAGE_TYPE_USAGE_MAP
//	byte 1      flag, always 0x01
//	bytes 2..4  reserved, zero
//	bytes 4..   bitmap payload, one bit per tracked page
type UsageMapPage struct {
	PageType byte
	Flag     byte
	Reserved []byte //2个字节
	Bitmap   []byte
}

// NewUsageMapPage builds an empty segment page for the given page size.
func NewUsageMapPage(format *common.Format) *UsageMapPage {
	return &UsageMapPage{
		PageType: common.PAGE_TYPE_USAGE_MAP,
		Flag:     0x01,
		Reserved: make([]byte, 2),
		Bitmap:   make([]byte, format.PageSize-format.OffsetUsageMapPageData),
	}
}

// ParseUsageMapPage decodes a segment page, rejecting pages that do not
// carry the usage map type tag.
func ParseUsageMapPage(content []byte, format *common.Format) (*UsageMapPage, error) {
	if len(content) != format.PageSize {
		return nil, errors.Errorf("usage map page must be %d bytes, got %d", format.PageSize, len(content))
	}
	if content[0] != common.PAGE_TYPE_USAGE_MAP {
		return nil, errors.Errorf("expected usage map page type %d, got %d", common.PAGE_TYPE_USAGE_MAP, content[0])
	}
	return &UsageMapPage{
		PageType: content[0],
		Flag:     content[1],
		Reserved: content[2:format.OffsetUsageMapPageData],
		Bitmap:   content[format.OffsetUsageMapPageData:],
	}, nil
}

func (p *UsageMapPage) GetSerializeBytes() []byte {
	var buff = make([]byte, 0)
	buff = append(buff, p.PageType)
	buff = append(buff, p.Flag)
	buff = append(buff, p.Reserved...)
	buff = append(buff, p.Bitmap...)
	return buff
}
