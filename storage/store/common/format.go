package common

import "fmt"

// Format holds the layout constants of one version of the page file
// format. The usage map code never hardcodes any of these; everything is
// driven off the Format handed in at construction.
type Format struct {
	Name     string
	PageSize int

	// Data page row directory: 2-byte row count followed by one 2-byte
	// offset entry per row. Row offsets are masked with ROW_OFFSET_MASK.
	OffsetRowCount int
	OffsetRowStart int

	// OffsetMapStart is where the bitmap payload begins inside an inline
	// usage map declaration row: tag byte plus 4-byte start page.
	OffsetMapStart int

	// UsageMapTableByteLength is the byte capacity of the inline bitmap
	// table, which also sizes the reference map pointer table.
	UsageMapTableByteLength int

	// OffsetUsageMapPageData is where the bitmap payload begins inside a
	// usage map segment page: tag byte, flag byte, two reserved bytes.
	OffsetUsageMapPageData int

	// OffsetReferenceMapPageNumbers is the offset of the pointer table
	// inside a reference usage map declaration row, past the tag byte.
	OffsetReferenceMapPageNumbers int

	// PagesPerUsageMapPage is how many page bits one segment page holds.
	PagesPerUsageMapPage int

	// ReferenceSlotCount is the number of 4-byte pointer slots in a
	// reference map declaration row.
	ReferenceSlotCount int
}

// ROW_OFFSET_MASK strips the flag bits carried in the high bits of a row
// directory entry.
const ROW_OFFSET_MASK = 0x1FFF

var FormatV4 = &Format{
	Name:                          "v4",
	PageSize:                      4096,
	OffsetRowCount:                12,
	OffsetRowStart:                14,
	OffsetMapStart:                5,
	UsageMapTableByteLength:       64,
	OffsetUsageMapPageData:        4,
	OffsetReferenceMapPageNumbers: 1,
	PagesPerUsageMapPage:          (4096 - 4) * 8,
	ReferenceSlotCount:            64/4 + 1,
}

var FormatV3 = &Format{
	Name:                          "v3",
	PageSize:                      2048,
	OffsetRowCount:                8,
	OffsetRowStart:                10,
	OffsetMapStart:                5,
	UsageMapTableByteLength:       128,
	OffsetUsageMapPageData:        4,
	OffsetReferenceMapPageNumbers: 1,
	PagesPerUsageMapPage:          (2048 - 4) * 8,
	ReferenceSlotCount:            17,
}

// FormatByName resolves a configured format name to its parameter set.
func FormatByName(name string) (*Format, error) {
	switch name {
	case "v4":
		return FormatV4, nil
	case "v3":
		return FormatV3, nil
	}
	return nil, fmt.Errorf("unknown page format: %q", name)
}
