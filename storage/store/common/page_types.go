package common

// On-disk page type tags. The tag is always byte 0 of a page.
const (
	PAGE_TYPE_DATA       byte = 0x01
	PAGE_TYPE_TABLE_DEF  byte = 0x02
	PAGE_TYPE_INDEX_NODE byte = 0x03
	PAGE_TYPE_INDEX_LEAF byte = 0x04
	PAGE_TYPE_USAGE_MAP  byte = 0x05
)

// INVALID_PAGE_NUMBER is returned by page iterators when exhausted.
const INVALID_PAGE_NUMBER int32 = -1
