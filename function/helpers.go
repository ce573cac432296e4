// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package function

import (
	"math"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// isRange checks if the given values x and y are finite and satisfy x <= y.
func isRange(x, y float64) bool {
	return !math.IsInf(x, 0) && !math.IsInf(y, 0) && x <= y
}

// checkRanges verifies that r holds n valid intervals.  If optional is set,
// r may also be empty.
func checkRanges(tp int, field string, r []float64, n int, optional bool) error {
	if optional && len(r) == 0 {
		return nil
	}
	if len(r) != 2*n {
		return invalid(tp, field, "invalid length %d", len(r))
	}
	for i := 0; i < n; i++ {
		if !isRange(r[2*i], r[2*i+1]) {
			return invalid(tp, field,
				"invalid range for component %d: [%g, %g]", i, r[2*i], r[2*i+1])
		}
	}
	return nil
}

// clip clips a value to the given range [min, max].
func clip(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// clipOutputs clips the outputs to the ranges in rng, if present.
func clipOutputs(outputs []float64, rng []float64) {
	if len(rng) < 2*len(outputs) {
		return
	}
	for i := range outputs {
		outputs[i] = clip(outputs[i], rng[2*i], rng[2*i+1])
	}
}

// interpolate performs linear interpolation.
func interpolate(x, xMin, xMax, yMin, yMax float64) float64 {
	if xMax <= xMin {
		return yMin
	}
	return yMin + (x-xMin)*(yMax-yMin)/(xMax-xMin)
}

// arrayFromFloats converts a slice of float64 to a PDF Array.
func arrayFromFloats(x []float64) pdf.Array {
	if x == nil {
		return nil
	}
	res := make(pdf.Array, len(x))
	for i, xi := range x {
		res[i] = pdf.Number(xi)
	}
	return res
}

// arrayFromInts converts a slice of int to a PDF Array.
func arrayFromInts(x []int) pdf.Array {
	if x == nil {
		return nil
	}
	res := make(pdf.Array, len(x))
	for i, xi := range x {
		res[i] = pdf.Integer(xi)
	}
	return res
}
