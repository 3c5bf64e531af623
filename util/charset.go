package util

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is used when neither a byte-order mark nor a valid fallback
// name is available.
const DefaultCharset = "gbk"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Charset pairs a resolved encoding with the name it was resolved from.
type Charset struct {
	Name     string
	Encoding encoding.Encoding
}

// Decode converts s from the charset to UTF-8. Undecodable input is returned
// unchanged.
func (c Charset) Decode(s string) string {
	if c.Encoding == nil || c.Encoding == unicode.UTF8 {
		return s
	}
	out, err := c.Encoding.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

// LookupCharset resolves a charset name such as "gbk" or "windows-1252".
func LookupCharset(name string) (Charset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Charset{}, ErrUnknownCharset
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return Charset{}, fmt.Errorf("%w: %s", ErrUnknownCharset, name)
	}
	return Charset{Name: name, Encoding: enc}, nil
}

// DetectCharset inspects the first three bytes of the file at path for a
// UTF-8 byte-order mark. Without one it returns the fallback charset.
//
// Detection never fails hard: when the file cannot be read or the fallback
// name is unknown, the returned error wraps ErrEncodingDetection and the
// returned Charset is still usable (GBK).
func DetectCharset(path string, fallback string) (Charset, error) {
	cs, lookupErr := LookupCharset(fallback)
	if lookupErr != nil {
		cs = Charset{Name: DefaultCharset, Encoding: simplifiedchinese.GBK}
	}

	f, err := os.Open(path)
	if err != nil {
		return cs, errors.Join(ErrEncodingDetection, err)
	}
	defer f.Close()

	head := make([]byte, len(utf8BOM))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return cs, errors.Join(ErrEncodingDetection, err)
	}
	if bytes.Equal(head[:n], utf8BOM) {
		return Charset{Name: "utf-8", Encoding: unicode.UTF8}, nil
	}
	if lookupErr != nil {
		return cs, errors.Join(ErrEncodingDetection, lookupErr)
	}
	return cs, nil
}
