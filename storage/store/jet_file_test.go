package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetstoredb/jetstore/conf"
	"github.com/jetstoredb/jetstore/storage/store/common"
	"github.com/jetstoredb/jetstore/util"
)

func TestJetFileLifecycle(t *testing.T) {
	cfg := conf.NewCfg()
	cfg.DataDir = t.TempDir()

	jetFile := NewJetFile(cfg, "myData", common.FormatV4)
	assert.Equal(t, "myData", jetFile.GetFileName())
	assert.Equal(t, 4096, jetFile.PageSize())

	require.NoError(t, jetFile.Create())
	require.Error(t, jetFile.Create())

	pageCount, err := jetFile.PageCount()
	require.NoError(t, err)
	assert.Equal(t, int32(0), pageCount)

	require.NoError(t, jetFile.Close())
	require.NoError(t, jetFile.Open())
	t.Cleanup(func() { jetFile.Close() })

	// A second file object over the same path must refuse to create.
	again := NewJetFile(cfg, "myData", common.FormatV4)
	require.Error(t, again.Create())
}

func TestJetFileReadWritePages(t *testing.T) {
	cfg := conf.NewCfg()
	cfg.DataDir = t.TempDir()
	jetFile := NewJetFile(cfg, "myData", common.FormatV4)
	require.NoError(t, jetFile.Create())
	t.Cleanup(func() { jetFile.Close() })

	page := util.AppendByte(jetFile.PageSize())
	page[0] = common.PAGE_TYPE_DATA
	page[100] = 0x42

	pageNumber, err := jetFile.AllocateNewPage(page)
	require.NoError(t, err)
	assert.Equal(t, int32(0), pageNumber)

	pageNumber, err = jetFile.AllocateNewPage(page)
	require.NoError(t, err)
	assert.Equal(t, int32(1), pageNumber)

	read := util.AppendByte(jetFile.PageSize())
	require.NoError(t, jetFile.ReadPage(read, 1))
	assert.Equal(t, page, read)

	page[100] = 0x43
	require.NoError(t, jetFile.WritePage(page, 0))
	require.NoError(t, jetFile.Do(0, func(buff []byte) error {
		assert.Equal(t, byte(0x43), buff[100])
		return nil
	}))
}

func TestJetFileBoundsChecks(t *testing.T) {
	cfg := conf.NewCfg()
	cfg.DataDir = t.TempDir()
	jetFile := NewJetFile(cfg, "myData", common.FormatV4)
	require.NoError(t, jetFile.Create())
	t.Cleanup(func() { jetFile.Close() })

	buff := util.AppendByte(jetFile.PageSize())
	require.Error(t, jetFile.ReadPage(buff, 0))
	require.Error(t, jetFile.WritePage(buff, 0))
	require.Error(t, jetFile.ReadPage(buff, -1))

	_, err := jetFile.AllocateNewPage(util.AppendByte(16))
	require.Error(t, err)
	require.Error(t, jetFile.ReadPage(util.AppendByte(16), 0))
}

func TestJetFileFingerprint(t *testing.T) {
	cfg := conf.NewCfg()
	cfg.DataDir = t.TempDir()
	jetFile := NewJetFile(cfg, "myData", common.FormatV4)
	require.NoError(t, jetFile.Create())
	t.Cleanup(func() { jetFile.Close() })

	page := util.AppendByte(jetFile.PageSize())
	_, err := jetFile.AllocateNewPage(page)
	require.NoError(t, err)

	before, err := jetFile.Fingerprint()
	require.NoError(t, err)

	page[7] = 0xFF
	require.NoError(t, jetFile.WritePage(page, 0))
	after, err := jetFile.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}
