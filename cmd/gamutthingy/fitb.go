/*
NAME
  fitb.go

DESCRIPTION
  fitb.go cross-checks internal/crt's bisection-solved BT.1886 black-level
  offset against an independent gonum/optimize minimization of the same
  residual, as a sanity check on the bisection's convergence rather than a
  second implementation of the EOTF.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// crossCheckBT1886B re-derives the BT.1886 Appendix 1 black-level offset b
// by minimizing the squared residual of the same equation
// NewBT1886's bisection solves, and reports how far that independent
// estimate lands from want.
func crossCheckBT1886B(blackLevel, whiteLevel, want float64) (got float64, diff float64, err error) {
	if blackLevel == 0 {
		return 0, 0, nil
	}
	residual := func(x []float64) float64 {
		b := x[0]
		if b < 0 {
			b = 0
		}
		result := (whiteLevel / math.Pow(1+b, 2.6)) * math.Pow(0.35+b, -0.4) * (b * b * b)
		diff := result - blackLevel
		return diff * diff
	}

	problem := optimize.Problem{Func: residual}
	result, err := optimize.Minimize(problem, []float64{0.01}, nil, &optimize.NelderMead{})
	if err != nil {
		return 0, 0, fmt.Errorf("fit-b: optimize.Minimize: %w", err)
	}
	got = result.X[0]
	if got < 0 {
		got = 0
	}
	return got, math.Abs(got - want), nil
}
