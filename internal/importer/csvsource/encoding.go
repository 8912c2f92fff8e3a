package csvsource

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// charsetDecoders maps chardet results to decoders for the single-byte
// encodings spreadsheet exports actually show up in.
var charsetDecoders = map[string]func() *encoding.Decoder{
	"ISO-8859-1":   charmap.Windows1252.NewDecoder,
	"windows-1252": charmap.Windows1252.NewDecoder,
	"ISO-8859-15":  charmap.ISO8859_15.NewDecoder,
}

// utf8Reader wraps r so that its content reads as UTF-8. Spreadsheet tools
// save CSV exports with a BOM, as plain UTF-8, or in a legacy single-byte
// encoding; all three show up in practice. Unknown encodings fall back to
// Windows-1252 rather than failing.
func utf8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(head, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case bytes.HasPrefix(head, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if newDecoder, ok := charsetDecoders[result.Charset]; ok {
			return transform.NewReader(br, newDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
