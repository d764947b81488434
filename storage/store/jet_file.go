package store

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/juju/errors"

	"github.com/jetstoredb/jetstore/conf"
	"github.com/jetstoredb/jetstore/logger"
	"github.com/jetstoredb/jetstore/storage/store/common"
	"github.com/jetstoredb/jetstore/util"
)

// JetFile is the file-backed PageChannel: a flat file of fixed-size pages
// addressed by page number. It handles raw page I/O only; caching,
// row interpretation and allocation policy live above it.
type JetFile struct {
	sync.RWMutex

	filePath string
	name     string
	format   *common.Format
	file     *os.File
}

func NewJetFile(cfg *conf.Cfg, name string, format *common.Format) *JetFile {
	return &JetFile{
		filePath: filepath.Join(cfg.DataDir, name+".jet"),
		name:     name,
		format:   format,
	}
}

// Create creates an empty page file, failing if one already exists.
func (f *JetFile) Create() error {
	f.Lock()
	defer f.Unlock()

	if f.file != nil {
		return errors.Errorf("file already open: %s", f.filePath)
	}
	exists, err := util.PathExists(f.filePath)
	if err != nil {
		return errors.Trace(err)
	}
	if exists {
		return errors.Errorf("file already exists: %s", f.filePath)
	}
	if err := os.MkdirAll(filepath.Dir(f.filePath), 0755); err != nil {
		return errors.Trace(err)
	}
	file, err := os.OpenFile(f.filePath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return errors.Annotatef(err, "creating %s", f.filePath)
	}
	f.file = file
	logger.Debugf("created jet file %s, page size %d", f.filePath, f.format.PageSize)
	return nil
}

// Open opens an existing page file.
func (f *JetFile) Open() error {
	f.Lock()
	defer f.Unlock()

	if f.file != nil {
		return errors.Errorf("file already open: %s", f.filePath)
	}
	file, err := os.OpenFile(f.filePath, os.O_RDWR, 0666)
	if err != nil {
		return errors.Annotatef(err, "opening %s", f.filePath)
	}
	f.file = file
	return nil
}

func (f *JetFile) Close() error {
	f.Lock()
	defer f.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return errors.Trace(err)
}

func (f *JetFile) GetFileName() string {
	return f.name
}

func (f *JetFile) PageSize() int {
	return f.format.PageSize
}

// PageCount returns the number of pages currently in the file.
func (f *JetFile) PageCount() (int32, error) {
	f.RLock()
	defer f.RUnlock()

	if f.file == nil {
		return 0, errors.Errorf("file not open: %s", f.filePath)
	}
	info, err := f.file.Stat()
	if err != nil {
		return 0, errors.Trace(err)
	}
	return int32(info.Size() / int64(f.format.PageSize)), nil
}

func (f *JetFile) ReadPage(buff []byte, pageNumber int32) error {
	f.RLock()
	defer f.RUnlock()

	if err := f.checkPage(buff, pageNumber); err != nil {
		return errors.Trace(err)
	}
	if _, err := f.file.ReadAt(buff, int64(pageNumber)*int64(f.format.PageSize)); err != nil {
		return errors.Annotatef(err, "reading page %d of %s", pageNumber, f.filePath)
	}
	return nil
}

func (f *JetFile) WritePage(buff []byte, pageNumber int32) error {
	f.Lock()
	defer f.Unlock()

	if err := f.checkPage(buff, pageNumber); err != nil {
		return errors.Trace(err)
	}
	if _, err := f.file.WriteAt(buff, int64(pageNumber)*int64(f.format.PageSize)); err != nil {
		return errors.Annotatef(err, "writing page %d of %s", pageNumber, f.filePath)
	}
	return nil
}

// AllocateNewPage appends buff to the file as a fresh page and returns
// the page number it landed on.
func (f *JetFile) AllocateNewPage(buff []byte) (int32, error) {
	f.Lock()
	defer f.Unlock()

	if f.file == nil {
		return 0, errors.Errorf("file not open: %s", f.filePath)
	}
	if len(buff) != f.format.PageSize {
		return 0, errors.Errorf("page buffer must be %d bytes, got %d", f.format.PageSize, len(buff))
	}
	info, err := f.file.Stat()
	if err != nil {
		return 0, errors.Trace(err)
	}
	pageNumber := int32(info.Size() / int64(f.format.PageSize))
	if _, err := f.file.WriteAt(buff, info.Size()); err != nil {
		return 0, errors.Annotatef(err, "allocating page %d of %s", pageNumber, f.filePath)
	}
	return pageNumber, nil
}

// Do reads the given page and hands it to fn. The buffer is scoped to the
// call; fn must not retain it.
func (f *JetFile) Do(pageNumber int32, fn func(buff []byte) error) error {
	buff := util.AppendByte(f.format.PageSize)
	if err := f.ReadPage(buff, pageNumber); err != nil {
		return errors.Trace(err)
	}
	return fn(buff)
}

// Fingerprint hashes the whole file, page order preserved. Useful for
// spotting unexpected on-disk changes in tests and debug logs.
func (f *JetFile) Fingerprint() (uint64, error) {
	f.RLock()
	defer f.RUnlock()

	if f.file == nil {
		return 0, errors.Errorf("file not open: %s", f.filePath)
	}
	content, err := io.ReadAll(io.NewSectionReader(f.file, 0, 1<<62))
	if err != nil {
		return 0, errors.Trace(err)
	}
	return util.HashCode(content), nil
}

func (f *JetFile) checkPage(buff []byte, pageNumber int32) error {
	if f.file == nil {
		return errors.Errorf("file not open: %s", f.filePath)
	}
	if len(buff) != f.format.PageSize {
		return errors.Errorf("page buffer must be %d bytes, got %d", f.format.PageSize, len(buff))
	}
	if pageNumber < 0 {
		return errors.Errorf("invalid page number %d", pageNumber)
	}
	info, err := f.file.Stat()
	if err != nil {
		return errors.Trace(err)
	}
	if int64(pageNumber)*int64(f.format.PageSize) >= info.Size() {
		return errors.Errorf("page %d is past the end of %s", pageNumber, f.filePath)
	}
	return nil
}

// interface check
var _ PageChannel = (*JetFile)(nil)
