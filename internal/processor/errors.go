package processor

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/cutsheet/internal/analyzer"
	"github.com/nguyentantai21042004/cutsheet/internal/subtitle"
)

// errorKind names the failure for history records and API responses.
func errorKind(err error) string {
	if k := analyzer.KindOf(err); k != "" {
		return string(k)
	}

	var ufe *subtitle.UnsupportedFormatError
	var de *subtitle.DecodeError
	switch {
	case errors.As(err, &ufe):
		return "unsupported_format"
	case errors.As(err, &de):
		return "decode_failed"
	case errors.Is(err, ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return string(analyzer.KindCanceled)
	default:
		return "parse_failed"
	}
}

// ErrorKind is errorKind for callers outside the package.
func ErrorKind(err error) string {
	return errorKind(err)
}
