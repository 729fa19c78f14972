package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadFile reads a local file into a Document
func LoadFile(fname string, maxBytes int64) (*Document, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fileInfo, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fileInfo.IsDir() {
		return nil, errors.New("document could not be a directory")
	}
	if maxBytes > 0 && fileInfo.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, fname, fileInfo.Size())
	}
	bs, err := io.ReadAll(fp)
	if err != nil {
		return nil, err
	}
	return New(bs, map[string]string{
		MetaSource:   "file",
		MetaFilename: fileInfo.Name(),
		MetaModTime:  strconv.FormatInt(fileInfo.ModTime().Unix(), 10),
	}), nil
}
