package density

import (
	fet "github.com/glycerine/golang-fisher-exact"
	"github.com/tokenme/probab/dst"
)

// ChiSquareEnrichment tests whether a window holding inWindow of the
// protein's total density mass exceeds the share expected from its length
// alone. Returns the upper tail probability from a 1-df chi-square; windows
// at or below their expected share return 1.
func ChiSquareEnrichment(inWindow, total float64, windowLen, proteinLen int) float64 {
	if total <= 0 || windowLen < 1 || proteinLen <= windowLen {
		return 1
	}

	expectedIn := total * float64(windowLen) / float64(proteinLen)
	if inWindow <= expectedIn {
		return 1
	}

	outWindow := total - inWindow
	expectedOut := total - expectedIn

	x := (inWindow-expectedIn)*(inWindow-expectedIn)/expectedIn +
		(outWindow-expectedOut)*(outWindow-expectedOut)/expectedOut

	return 1.0 - dst.ChiSquareCDF(1)(x)
}

// FisherWindowTest compares a window's covered/uncovered residue counts
// between two samples, returning the two-tailed Fisher exact probability.
func FisherWindowTest(aIn, aOut, bIn, bOut int) float64 {
	_, _, _, twop := fet.FisherExactTest(aIn, aOut, bIn, bOut)

	return twop
}
