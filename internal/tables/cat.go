/*
NAME
  cat.go

DESCRIPTION
  cat.go holds the chromatic adaptation transform matrices used to move a
  gamut's primaries onto a common D65 working whitepoint before gamut
  mapping: the classic Bradford matrix, and the CAT16 matrix from CIECAM16.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tables

import "github.com/crtlab/gamutthingy/internal/mathutil"

// CATKind selects a chromatic adaptation transform.
type CATKind int

const (
	CATBradford CATKind = iota
	CAT16
)

// BradfordMatrix is from K.M. Lam, "Metamerism and Colour Constancy,"
// Ph.D. Thesis, University of Bradford, 1985.
var BradfordMatrix = mathutil.Matrix3{
	{0.8951, 0.2664, -0.1614},
	{-0.7502, 1.7135, 0.0367},
	{0.0389, -0.0685, 1.0296},
}

// CAT16Matrix is from Li Changjun, et al., "A Revision of CIECAM02 and its
// CAT and UCS" (2016).
var CAT16Matrix = mathutil.Matrix3{
	{0.401288, 0.650173, -0.051461},
	{-0.250268, 1.204414, 0.045854},
	{-0.002079, 0.048952, 0.953127},
}

// Matrix returns the matrix for the given CAT kind.
func (k CATKind) Matrix() mathutil.Matrix3 {
	if k == CAT16 {
		return CAT16Matrix
	}
	return BradfordMatrix
}
