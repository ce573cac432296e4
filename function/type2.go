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
	"io"
	"math"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Type2 represents a power interpolation function, of the form y = C0 + x^N ×
// (C1 - C0).  These functions have a single input x and can have one or more
// outputs. The PDF specification refers to this type of function as
// "exponential interpolation".
type Type2 struct {
	pdf.ObjectBase

	// XMin is the minimum value of the input range.  Input values x smaller
	// than XMin are clipped to XMin.  This must be less than or equal to XMax.
	XMin float64

	// XMax is the maximum value of the input range.  Input values x larger
	// than XMax are clipped to XMax.
	XMax float64

	// Range (optional) defines clipping ranges for the outputs, in the form
	// [min0, max0, min1, max1, ...].
	Range []float64

	// C0 defines function result when x = 0.0.
	// This must contain at least one value and must have the same length as C1.
	C0 []float64

	// C1 defines function result when x = 1.0.
	C1 []float64

	// N is the interpolation exponent.
	N float64
}

// FunctionType returns 2 for Type 2 functions.
func (f *Type2) FunctionType() int {
	return 2
}

// Shape returns the number of input and output values of the function.
func (f *Type2) Shape() (int, int) {
	return 1, len(f.C0)
}

// Category implements the [pdf.Shareable] interface.
func (f *Type2) Category() pdf.Category {
	return pdf.CategoryFunction
}

// Equal implements the [pdf.Shareable] interface.
func (f *Type2) Equal(other pdf.Shareable) bool {
	g, ok := other.(*Type2)
	if !ok {
		return false
	}
	return f.XMin == g.XMin && f.XMax == g.XMax && f.N == g.N &&
		equalFloats(f.Range, g.Range) &&
		equalFloats(f.C0, g.C0) && equalFloats(f.C1, g.C1)
}

// Apply applies the function to the given input value and returns the output
// values.
func (f *Type2) Apply(x float64) []float64 {
	x = clip(x, f.XMin, f.XMax)

	var xPowN float64
	switch f.N {
	case 0:
		xPowN = 1
	case 1:
		xPowN = x
	default:
		xPowN = math.Pow(x, f.N)
	}

	_, n := f.Shape()
	outputs := make([]float64, n)
	for i := range outputs {
		outputs[i] = f.C0[i] + xPowN*(f.C1[i]-f.C0[i])
	}
	clipOutputs(outputs, f.Range)
	return outputs
}

// PDF implements the [pdf.Object] interface.
func (f *Type2) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"FunctionType": pdf.Integer(2),
		"Domain":       pdf.Array{pdf.Number(f.XMin), pdf.Number(f.XMax)},
		"C0":           arrayFromFloats(f.C0),
		"C1":           arrayFromFloats(f.C1),
		"N":            pdf.Number(f.N),
	}
	if len(f.Range) > 0 {
		dict["Range"] = arrayFromFloats(f.Range)
	}
	return dict.PDF(w)
}

// validate checks if the Type2 function is properly configured.
func (f *Type2) validate() error {
	if !isRange(f.XMin, f.XMax) {
		return invalid(2, "XMin/XMax", "invalid domain [%g,%g]",
			f.XMin, f.XMax)
	}

	if len(f.C0) < 1 || len(f.C0) != len(f.C1) {
		return invalid(2, "C0/C1", "invalid length %d,%d",
			len(f.C0), len(f.C1))
	}

	if !isFinite(f.N) {
		return invalid(2, "N", "must be a finite number, got %g", f.N)
	}
	if f.N != math.Trunc(f.N) && f.XMin < 0 {
		return invalid(2, "Domain",
			"minimum must be >= 0 when N is non-integer, got %g", f.XMin)
	}
	if f.N < 0 && f.XMin <= 0 && f.XMax >= 0 {
		return invalid(2, "Domain", "must not include 0 when N is negative")
	}

	_, n := f.Shape()
	return checkRanges(2, "Range", f.Range, n, true)
}
