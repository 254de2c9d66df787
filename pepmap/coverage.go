package pepmap

import (
	"fmt"

	rle "github.com/tj/go-rle"
)

// Coverage builds a per-residue mask of proteinLen entries where true marks
// residues spanned by at least one match.
func Coverage(matches []Match, proteinLen int) []bool {
	mask := make([]bool, proteinLen)

	for _, m := range matches {
		for i := m.Start; i <= m.End && i <= proteinLen; i++ {
			if i < 1 {
				continue
			}
			mask[i-1] = true
		}
	}

	return mask
}

// CoverageFraction is the share of residues covered by any match.
func CoverageFraction(matches []Match, proteinLen int) float64 {
	if proteinLen < 1 {
		return 0
	}

	covered := 0
	for _, hit := range Coverage(matches, proteinLen) {
		if hit {
			covered++
		}
	}

	return float64(covered) / float64(proteinLen)
}

// CoverageRLE run-length encodes the coverage mask for compact storage.
func CoverageRLE(matches []Match, proteinLen int) []byte {
	mask := Coverage(matches, proteinLen)

	flat := make([]int64, len(mask))
	for i, hit := range mask {
		if hit {
			flat[i] = 1
		}
	}

	return rle.EncodeInt64(flat)
}

// DecodeCoverageRLE reverses CoverageRLE.
func DecodeCoverageRLE(encoded []byte) ([]bool, error) {
	flat, err := rle.DecodeInt64(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding coverage: %w", err)
	}

	mask := make([]bool, len(flat))
	for i, v := range flat {
		mask[i] = v != 0
	}

	return mask, nil
}
