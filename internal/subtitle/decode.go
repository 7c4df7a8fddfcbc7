package subtitle

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	sniffSize       = 4096
	defaultEncoding = "UTF-8"
)

var errUnknownCharset = errors.New("unknown charset")

// detector guesses the charset of a byte sample.
type detector interface {
	Detect(sample []byte) (string, error)
}

type chardetDetector struct{}

func (chardetDetector) Detect(sample []byte) (string, error) {
	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return "", err
	}
	return res.Charset, nil
}

// charset names reported by chardet that the x/text indexes spell differently
var charsetAliases = map[string]string{
	"gb-18030": "gb18030",
	"ascii":    "utf-8",
	"us-ascii": "utf-8",
	"utf8":     "utf-8",
}

// detectEncoding returns the charset of data, or UTF-8 when the detector has no answer.
func (p *implParser) detectEncoding(data []byte) string {
	sample := data
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}
	// pure 7-bit text reads the same in every ASCII-compatible charset
	if isPlainASCII(sample) {
		return defaultEncoding
	}
	name, err := p.detector.Detect(sample)
	if err != nil || strings.TrimSpace(name) == "" {
		return defaultEncoding
	}
	return name
}

// decode converts data to a UTF-8 string using the named charset.
func decode(data []byte, name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := charsetAliases[key]; ok {
		key = alias
	}

	if key == "utf-8" {
		if !utf8.Valid(data) {
			return "", &DecodeError{Encoding: name, Err: errors.New("invalid UTF-8 byte sequence")}
		}
		return strings.TrimPrefix(string(data), "\ufeff"), nil
	}

	enc, err := lookupEncoding(key)
	if err != nil {
		return "", &DecodeError{Encoding: name, Err: err}
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &DecodeError{Encoding: name, Err: err}
	}
	return strings.TrimPrefix(string(out), "\ufeff"), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errUnknownCharset
	}
	return enc, nil
}

// isPlainASCII reports whether b has only 7-bit bytes and no NULs (which would hint at UTF-16/32).
func isPlainASCII(b []byte) bool {
	for _, c := range b {
		if c == 0 || c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
