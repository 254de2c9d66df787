package protpeptigram

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/csimplestring/go-csv/detector"
)

// OpenFileOrURL fetches the full contents of a local file, an http(s):// URL,
// or (when a client is provided) a gs:// object, decompressing transparently.
func OpenFileOrURL(input string, client *storage.Client) ([]byte, error) {
	var f io.ReadCloser

	switch {
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		resp, err := http.Get(input)
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer resp.Body.Close()

		f = resp.Body

	case strings.HasPrefix(input, "gs://") && client != nil:
		handle, err := gsObjectHandle(input, client)
		if err != nil {
			return nil, err
		}
		rc := &GSReaderAtCloser{ObjectHandle: handle, Context: context.Background()}
		defer rc.Close()

		f = rc

	default:
		file, err := os.Open(ExpandHome(input))
		if err != nil {
			return nil, err
		}
		defer file.Close()

		decomp, err := MaybeDecompressReadCloserFromFile(file)
		if err != nil {
			return nil, err
		}

		return io.ReadAll(decomp)
	}

	decomp, err := MaybeDecompressReader(f)
	if err != nil {
		return nil, err
	}

	return io.ReadAll(decomp)
}

// DetermineDelimiter returns the single most likely rune that would delimit
// the values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// DetermineDelimiterBytes is DetermineDelimiter over an in-memory table.
func DetermineDelimiterBytes(data []byte) rune {
	return DetermineDelimiter(bytes.NewReader(data))
}
