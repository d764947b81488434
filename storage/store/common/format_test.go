package common

import (
	"testing"

	"github.com/smartystreets/assertions"
)

func ok(t *testing.T, msg string) {
	t.Helper()
	if msg != "" {
		t.Error(msg)
	}
}

func TestFormatByName(t *testing.T) {
	format, err := FormatByName("v4")
	ok(t, assertions.ShouldBeNil(err))
	ok(t, assertions.ShouldEqual(format, FormatV4))

	format, err = FormatByName("v3")
	ok(t, assertions.ShouldBeNil(err))
	ok(t, assertions.ShouldEqual(format, FormatV3))

	_, err = FormatByName("v5")
	ok(t, assertions.ShouldNotBeNil(err))
}

func TestFormatDerivedParameters(t *testing.T) {
	// One segment page holds a bit for every byte past its header.
	ok(t, assertions.ShouldEqual(FormatV4.PagesPerUsageMapPage,
		(FormatV4.PageSize-FormatV4.OffsetUsageMapPageData)*8))
	ok(t, assertions.ShouldEqual(FormatV3.PagesPerUsageMapPage,
		(FormatV3.PageSize-FormatV3.OffsetUsageMapPageData)*8))

	// The v4 slot count and the table-length derivation agree.
	ok(t, assertions.ShouldEqual(FormatV4.ReferenceSlotCount,
		FormatV4.UsageMapTableByteLength/4+1))
	ok(t, assertions.ShouldEqual(FormatV4.ReferenceSlotCount, 17))
}
