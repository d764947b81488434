package store

import (
	"github.com/jetstoredb/jetstore/storage/store/common"
)

// Page iterators are stateful views over one usage map. They never copy
// the bit index: every step reads the live set, and a modCount check lets
// an exhausted iterator pick up pages that were added after it ran dry,
// without restarting the walk.

// ForwardPageIterator walks a usage map's pages in ascending order.
type ForwardPageIterator struct {
	m *UsageMap

	nextSetBit   int
	prevSetBit   int
	lastModCount int
}

func newForwardPageIterator(m *UsageMap) *ForwardPageIterator {
	iter := &ForwardPageIterator{m: m}
	iter.Reset()
	return iter
}

// HasNextPage reports whether another page is available. If the iterator
// was exhausted but the map has mutated since, it re-probes: a full reset
// when nothing was ever returned, otherwise a re-derive from just after
// the last returned bit.
func (iter *ForwardPageIterator) HasNextPage() bool {
	if iter.nextSetBit < 0 && iter.lastModCount != iter.m.modCount {
		if iter.prevSetBit < 0 {
			// we were at the beginning
			iter.Reset()
		} else {
			iter.nextSetBit = iter.prevSetBit
			iter.GetNextPage()
		}
	}
	return iter.nextSetBit >= 0
}

// GetNextPage returns the next tracked page number, or
// INVALID_PAGE_NUMBER when exhausted.
func (iter *ForwardPageIterator) GetNextPage() int32 {
	if !iter.HasNextPage() {
		return common.INVALID_PAGE_NUMBER
	}
	iter.lastModCount = iter.m.modCount
	iter.prevSetBit = iter.nextSetBit
	iter.nextSetBit = iter.m.pageNumbers.NextSetBit(iter.nextSetBit + 1)
	return int32(iter.prevSetBit) + iter.m.startPage
}

// Reset positions the iterator at the smallest tracked page.
func (iter *ForwardPageIterator) Reset() {
	iter.lastModCount = iter.m.modCount
	iter.prevSetBit = -1
	iter.nextSetBit = iter.m.pageNumbers.NextSetBit(0)
}

// ReversePageIterator walks a usage map's pages in descending order.
type ReversePageIterator struct {
	m *UsageMap

	nextSetBit   int
	prevSetBit   int
	lastModCount int
}

func newReversePageIterator(m *UsageMap) *ReversePageIterator {
	iter := &ReversePageIterator{m: m}
	iter.Reset()
	return iter
}

// HasNextPage reports whether another page is available, re-probing after
// mutation the same way the forward iterator does.
func (iter *ReversePageIterator) HasNextPage() bool {
	if iter.nextSetBit < 0 && iter.lastModCount != iter.m.modCount {
		if iter.prevSetBit < 0 {
			iter.Reset()
		} else {
			iter.nextSetBit = iter.prevSetBit
			iter.GetNextPage()
		}
	}
	return iter.nextSetBit >= 0
}

// GetNextPage returns the next tracked page number going downward, or
// INVALID_PAGE_NUMBER when exhausted. Unset bits are skipped by a linear
// backward scan.
func (iter *ReversePageIterator) GetNextPage() int32 {
	if !iter.HasNextPage() {
		return common.INVALID_PAGE_NUMBER
	}
	iter.lastModCount = iter.m.modCount
	iter.prevSetBit = iter.nextSetBit
	iter.nextSetBit--
	for iter.nextSetBit >= 0 && !iter.m.pageNumbers.Get(iter.nextSetBit) {
		iter.nextSetBit--
	}
	return int32(iter.prevSetBit) + iter.m.startPage
}

// Reset positions the iterator at the largest tracked page.
func (iter *ReversePageIterator) Reset() {
	iter.lastModCount = iter.m.modCount
	iter.prevSetBit = -1
	iter.nextSetBit = iter.m.pageNumbers.Length() - 1
}
