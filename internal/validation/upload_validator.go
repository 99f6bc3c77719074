// Package validation checks dataset uploads before they reach the
// processing pipeline: accepted extensions, size bounds and a content
// sniff that catches mislabeled files early.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// ErrFileTooLarge marks uploads rejected for size, so transport can map
// them to 413 instead of a generic bad request.
var ErrFileTooLarge = errors.New("file exceeds the upload size limit")

// zip local file header, the container format of .xlsx.
var xlsxMagic = []byte{'P', 'K', 0x03, 0x04}

// UploadValidator validates dataset uploads. The zero MaxBytes means
// no size bound.
type UploadValidator struct {
	MaxBytes int64
	logger   *slog.Logger
}

// NewUploadValidator creates an upload validator.
func NewUploadValidator(maxBytes int64, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{
		MaxBytes: maxBytes,
		logger:   logger.With(slog.String("component", "upload_validator")),
	}
}

// Validate checks the upload's name, declared size and leading bytes.
// The reader must support seeking; it is rewound before returning.
func (v *UploadValidator) Validate(r io.ReadSeeker, filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".csv" && ext != ".xlsx" {
		v.logger.Warn("Rejected upload with unsupported extension",
			slog.String("filename", filename))
		return fmt.Errorf("unsupported file type %q: expected .csv or .xlsx", ext)
	}

	if v.MaxBytes > 0 && size > v.MaxBytes {
		v.logger.Warn("Rejected oversized upload",
			slog.String("filename", filename),
			slog.Int64("size", size),
			slog.Int64("max", v.MaxBytes))
		return fmt.Errorf("%w of %d bytes", ErrFileTooLarge, v.MaxBytes)
	}

	head := make([]byte, len(xlsxMagic))
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("read upload header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}
	head = head[:n]

	isZip := bytes.Equal(head, xlsxMagic)
	switch {
	case ext == ".xlsx" && !isZip:
		return fmt.Errorf("file %s does not look like a spreadsheet", filename)
	case ext == ".csv" && isZip:
		return fmt.Errorf("file %s looks like a spreadsheet, rename it .xlsx", filename)
	case len(head) == 0:
		return fmt.Errorf("file %s is empty", filename)
	}

	return nil
}
