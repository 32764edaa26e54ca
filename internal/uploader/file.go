package uploader

import (
	"bytes"
	"folio/shared/validator"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// File is one candidate for upload. ContentType is the declared type the server sees on the part.
type File struct {
	Name        string
	Size        int64
	ContentType string

	open func() (io.ReadCloser, error)
}

// Rejection names a file that failed client-side validation and was not queued.
type Rejection struct {
	Name   string
	Reason string
}

// FileFromPath describes a file on disk, sniffing its content type from the first bytes.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, errors.Wrapf(err, "stat %s", path)
	}

	if info.IsDir() {
		return File{}, errors.Errorf("%s is a directory", path)
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, errors.Wrapf(err, "detect type of %s", path)
	}

	return File{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mime.String(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FileFromBytes describes an in-memory payload.
func FileFromBytes(name, contentType string, data []byte) File {
	return File{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// validate applies the same declared type and size checks as the upload endpoint.
func (f File) validate(maxSizeMB int) *Rejection {
	if f.open == nil {
		return &Rejection{Name: f.Name, Reason: "file has no content"}
	}

	if err := validator.ImageFile(f.ContentType, f.Size, maxSizeMB); err != nil {
		return &Rejection{Name: f.Name, Reason: err.Error()}
	}

	return nil
}
