// Package encoding normalises CSV input files to UTF-8. Spreadsheets saved
// from Excel arrive with a UTF-8 BOM, as UTF-16, or in a Windows code page.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

var boms = []struct {
	mark []byte
	enc  textenc.Encoding
}{
	{mark: []byte{0xEF, 0xBB, 0xBF}},
	{mark: []byte{0xFF, 0xFE}, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{mark: []byte{0xFE, 0xFF}, enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// NewUTF8Reader wraps r so that reads yield UTF-8 without a byte order mark.
//
// A BOM decides the encoding when present. Otherwise valid UTF-8 passes
// through, chardet gets a guess at anything else, and Windows-1252 is the
// last resort.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.mark) {
			continue
		}

		if b.enc == nil {
			_, _ = br.Discard(len(b.mark))
			return br, nil
		}

		return transform.NewReader(br, b.enc.NewDecoder()), nil
	}

	sample := head
	if len(head) == sniffLen {
		sample = completeRunes(head)
	}

	enc := detect(sample)
	if enc == nil {
		return br, nil
	}

	return transform.NewReader(br, enc.NewDecoder()), nil
}

// completeRunes drops a multibyte sequence cut off by the end of the sniff
// window.
func completeRunes(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}

		if !utf8.FullRune(b[len(b)-i:]) {
			return b[:len(b)-i]
		}

		return b
	}

	return b
}

// detect returns nil when the sample is already UTF-8.
func detect(sample []byte) textenc.Encoding {
	if utf8.Valid(sample) {
		return nil
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return nil
		case "ISO-8859-9":
			return charmap.ISO8859_9
		case "ISO-8859-15":
			return charmap.ISO8859_15
		}
	}

	return charmap.Windows1252
}
