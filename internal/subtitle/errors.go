package subtitle

import "fmt"

// UnsupportedFormatError is returned for files that are neither .srt nor .vtt.
type UnsupportedFormatError struct {
	Filename string
	Ext      string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported subtitle format: %s has no extension", e.Filename)
	}
	return fmt.Sprintf("unsupported subtitle format %q: %s", e.Ext, e.Filename)
}

// DecodeError is returned when the content cannot be decoded with the chosen charset.
type DecodeError struct {
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode subtitle as %s", e.Encoding)
	}
	return fmt.Sprintf("decode subtitle as %s: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
