package store

import (
	"fmt"

	"github.com/juju/errors"
)

// ErrPromotionNotSupported is returned when an inline usage map would have
// to convert itself to a reference map. The conversion policy (capacity
// threshold, migration of existing bits onto segment pages) is undecided,
// so the operation fails loudly instead of guessing.
var ErrPromotionNotSupported = errors.New("inline usage map promotion to reference map is not supported")

// UnknownMapTypeError reports a declaration row whose tag byte matches no
// known usage map encoding.
type UnknownMapTypeError struct {
	MapType byte
}

func (e *UnknownMapTypeError) Error() string {
	return fmt.Sprintf("unrecognized usage map type: %d", e.MapType)
}

// CorruptPageTypeError reports a page that was expected to be a usage map
// segment page but carries a different type tag.
type CorruptPageTypeError struct {
	PageNumber int32
	PageType   byte
}

func (e *CorruptPageTypeError) Error() string {
	return fmt.Sprintf("looking for usage map at page %d, but page type is %d", e.PageNumber, e.PageType)
}

// PageBelowWindowError reports an add targeting a page number below an
// inline map's current start page. Inline windows only slide forward on
// add.
type PageBelowWindowError struct {
	PageNumber int32
	StartPage  int32
}

func (e *PageBelowWindowError) Error() string {
	return fmt.Sprintf("can't add page number %d because it is less than start page %d", e.PageNumber, e.StartPage)
}
