package biom

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// Container format names as returned by Sniff and used as registry keys.
const (
	// FormatJSON is the BIOM 1.0 JSON container.
	FormatJSON = "json"
	// FormatHDF5 is the BIOM 2.x HDF5 container.
	FormatHDF5 = "hdf5"
)

var (
	// ErrUnknownFormat is returned when the input matches no known BIOM
	// container format.
	ErrUnknownFormat = errors.New("biom: unrecognized container format")

	// ErrNoDecoder is the sentinel wrapped by ErrDecoderUnavailable.
	ErrNoDecoder = errors.New("biom: no decoder registered")
)

// ErrDecoderUnavailable indicates that the input was recognized but no
// decoder for its format is registered. It satisfies
// errors.Is(err, ErrNoDecoder).
type ErrDecoderUnavailable struct {
	Format string
}

func (e *ErrDecoderUnavailable) Error() string {
	return fmt.Sprintf("biom: no decoder registered for %q format (import a decoder package such as biomtab/biom/biomjson)", e.Format)
}

func (e *ErrDecoderUnavailable) Unwrap() error { return ErrNoDecoder }

// Decoder decodes one BIOM container format.
// Implementations must be safe for concurrent use.
type Decoder interface {
	// Format returns the container format the decoder handles.
	Format() string
	// Decode reads a complete BIOM document from r.
	Decode(r io.Reader) (*Table, error)
}

var (
	decodersMu sync.RWMutex
	decoders   = make(map[string]Decoder)
)

// RegisterDecoder makes a decoder available to Decode under its format name.
// Decoder packages call this from an init function; registering a second
// decoder for the same format replaces the first.
func RegisterDecoder(d Decoder) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[d.Format()] = d
}

// DecoderFor returns the registered decoder for a format, if any.
// The lookup happens per call, so registration order relative to Decode
// calls is the only availability state.
func DecoderFor(format string) (Decoder, bool) {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	d, ok := decoders[format]
	return d, ok
}

// HDF5 and gzip magic numbers.
var (
	hdf5Magic = []byte("\x89HDF\r\n\x1a\n")
	gzipMagic = []byte{0x1f, 0x8b}
)

// Sniff inspects a prefix of the raw bytes and reports the container
// format, or "" when the bytes match neither known format. JSON detection
// skips leading whitespace and requires an object open brace, which every
// BIOM 1.0 document starts with.
func Sniff(prefix []byte) string {
	if bytes.HasPrefix(prefix, hdf5Magic) {
		return FormatHDF5
	}
	for _, b := range prefix {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return FormatJSON
		default:
			return ""
		}
	}
	return ""
}

// Decode sniffs the container format of r, selects a registered decoder and
// decodes a Table. Gzip-compressed input is transparently unwrapped before
// sniffing. Unrecognized input fails with ErrUnknownFormat; recognized input
// without a registered decoder fails with *ErrDecoderUnavailable. Decoder
// errors are returned as-is.
func Decode(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("biom: read input: %w", err)
	}
	if bytes.HasPrefix(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("biom: open gzip stream: %w", err)
		}
		defer gz.Close()
		br = bufio.NewReader(gz)
	}

	head, err = br.Peek(len(hdf5Magic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("biom: read input: %w", err)
	}
	format := Sniff(head)
	if format == "" {
		return nil, ErrUnknownFormat
	}
	d, ok := DecoderFor(format)
	if !ok {
		return nil, &ErrDecoderUnavailable{Format: format}
	}
	return d.Decode(br)
}
