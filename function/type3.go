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
	"fmt"
	"io"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Type3 represents a piecewise defined function with a single input.
// The PDF specification refers to this as a "stitching function".
type Type3 struct {
	pdf.ObjectBase

	// XMin and XMax define the input range.
	XMin, XMax float64

	// Range (optional) defines the valid output ranges as [min0, max0, min1,
	// max1, ...].
	Range []float64

	// Functions is the array of k functions to be combined.
	// All functions must have 1 input and the same number of outputs.
	Functions []Function

	// Bounds defines the boundaries between subdomains.
	// It must have k-1 elements, in increasing order, within the domain.
	Bounds []float64

	// Encode maps each subdomain to corresponding function's domain as
	// [min0, max0, min1, max1, ...].
	Encode []float64
}

// FunctionType returns 3 for Type 3 functions.
func (f *Type3) FunctionType() int {
	return 3
}

// Shape returns the number of input and output values of the function.
func (f *Type3) Shape() (int, int) {
	if len(f.Functions) == 0 {
		return 1, 0
	}
	_, n := f.Functions[0].Shape()
	return 1, n
}

// Category implements the [pdf.Shareable] interface.
func (f *Type3) Category() pdf.Category {
	return pdf.CategoryFunction
}

// Equal implements the [pdf.Shareable] interface.
func (f *Type3) Equal(other pdf.Shareable) bool {
	g, ok := other.(*Type3)
	if !ok {
		return false
	}
	if f.XMin != g.XMin || f.XMax != g.XMax ||
		!equalFloats(f.Range, g.Range) ||
		!equalFloats(f.Bounds, g.Bounds) ||
		!equalFloats(f.Encode, g.Encode) ||
		len(f.Functions) != len(g.Functions) {
		return false
	}
	for i, sub := range f.Functions {
		if sub != g.Functions[i] && !sub.Equal(g.Functions[i]) {
			return false
		}
	}
	return true
}

// Apply applies the function to the given input value.  All component
// functions must implement an Apply method with a single input.
func (f *Type3) Apply(x float64) []float64 {
	x = clip(x, f.XMin, f.XMax)

	k := len(f.Functions)
	i := f.findSubdomain(x)
	lo, hi := f.XMin, f.XMax
	if i > 0 {
		lo = f.Bounds[i-1]
	}
	if i < k-1 {
		hi = f.Bounds[i]
	}
	t := interpolate(x, lo, hi, f.Encode[2*i], f.Encode[2*i+1])

	var outputs []float64
	switch sub := f.Functions[i].(type) {
	case interface{ Apply(float64) []float64 }:
		outputs = sub.Apply(t)
	case *Type0:
		outputs = sub.Apply(t)
	default:
		panic(fmt.Sprintf("Type 3 function: cannot evaluate %T", sub))
	}
	clipOutputs(outputs, f.Range)
	return outputs
}

// findSubdomain returns the index of the subdomain containing x.
// Subdomains are half-open intervals [a, b), except for the last one which
// is closed.  If XMin equals Bounds[0], the first subdomain is the single
// point XMin.
func (f *Type3) findSubdomain(x float64) int {
	if len(f.Bounds) > 0 && f.Bounds[0] == f.XMin && x == f.XMin {
		return 0
	}
	for i, b := range f.Bounds {
		if x < b {
			return i
		}
	}
	return len(f.Bounds)
}

// PDF implements the [pdf.Object] interface.
func (f *Type3) PDF(w io.Writer) error {
	functions := make(pdf.Array, len(f.Functions))
	for i, sub := range f.Functions {
		functions[i] = sub.Ref()
	}
	dict := pdf.Dict{
		"FunctionType": pdf.Integer(3),
		"Domain":       pdf.Array{pdf.Number(f.XMin), pdf.Number(f.XMax)},
		"Functions":    functions,
		"Bounds":       append(pdf.Array{}, arrayFromFloats(f.Bounds)...),
		"Encode":       arrayFromFloats(f.Encode),
	}
	if len(f.Range) > 0 {
		dict["Range"] = arrayFromFloats(f.Range)
	}
	return dict.PDF(w)
}

func (f *Type3) validate() error {
	if !isRange(f.XMin, f.XMax) {
		return invalid(3, "XMin/XMax", "invalid domain [%g,%g]",
			f.XMin, f.XMax)
	}
	k := len(f.Functions)
	if k == 0 {
		return invalid(3, "Functions", "must not be empty")
	}
	_, n := f.Functions[0].Shape()
	for i, sub := range f.Functions {
		m, ni := sub.Shape()
		if m != 1 || ni != n {
			return invalid(3, "Functions",
				"function %d has shape %d->%d, want 1->%d", i, m, ni, n)
		}
	}
	if len(f.Bounds) != k-1 {
		return invalid(3, "Bounds", "invalid length %d", len(f.Bounds))
	}
	prev := f.XMin
	for i, b := range f.Bounds {
		if !isFinite(b) || b < prev || b > f.XMax {
			return invalid(3, "Bounds", "invalid bound %d: %g", i, b)
		}
		prev = b
	}
	if len(f.Encode) != 2*k {
		return invalid(3, "Encode", "invalid length %d", len(f.Encode))
	}
	for i, x := range f.Encode {
		if !isFinite(x) {
			return invalid(3, "Encode", "invalid value %d: %g", i, x)
		}
	}
	return checkRanges(3, "Range", f.Range, n, true)
}
