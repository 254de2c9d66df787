package protpeptigram

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the compression of a stream by checking
// the first bytes against a set of known signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475 . Note that this consumes up to
// 6 bytes from the reader.
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	if _, err := r.Read(buff); err != nil {
		return DataTypeInvalid, err
	}

	return matchDataType(buff), nil
}

func matchDataType(buff []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloserFromFile inspects the file's leading bytes and,
// when a known compression signature is found, returns a reader that
// transparently decompresses. Since peptide exports are frequently gzipped,
// this sits in front of every tabular loader.
func MaybeDecompressReadCloserFromFile(f *os.File) (io.ReadCloser, error) {
	dt, err := DetectDataType(f)
	if err != nil {
		return nil, err
	}
	// Reset your original reader; the decompressors read their headers
	// eagerly, so this cannot wait until return.
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	switch dt {
	case DataTypeGzip:
		return gzip.NewReader(f)
	case DataTypeZip:
		return &readCloserFaker{zipstream.NewReader(f)}, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(f)}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		return &readCloserFaker{reader}, nil
	case DataTypeZ:
		return zlib.NewReader(f)
	}

	// No known signature. Assume this is uncompressed.
	return f, nil
}

// MaybeDecompressReader is the streaming equivalent for sources that cannot
// seek (Google Storage objects, HTTP bodies). It peeks rather than consumes,
// so the underlying reader does not need to be reopened.
func MaybeDecompressReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buff, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch matchDataType(buff) {
	case DataTypeGzip:
		return gzip.NewReader(br)
	case DataTypeZip:
		return zipstream.NewReader(br), nil
	case DataTypeBZip2:
		return bzip2.NewReader(br), nil
	case DataTypeXZ:
		return xz.NewReader(br, 0)
	case DataTypeZ:
		return zlib.NewReader(br)
	}

	return br, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
