package store

// PageChannel is the page I/O port the usage map code runs against. The
// file-backed implementation is JetFile; tests substitute their own.
//
// Implementations do not retry: any I/O failure is returned as-is and
// aborts the mutation in progress.
type PageChannel interface {
	// PageSize reports the fixed page size in bytes.
	PageSize() int

	// ReadPage fills buff with the contents of the given page. buff must
	// be exactly one page long.
	ReadPage(buff []byte, pageNumber int32) error

	// WritePage overwrites an existing page with buff.
	WritePage(buff []byte, pageNumber int32) error

	// AllocateNewPage persists buff as a brand-new page and returns the
	// page number it was assigned.
	AllocateNewPage(buff []byte) (int32, error)
}
