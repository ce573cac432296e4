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
	"bytes"
	"io"
	"math"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Type0 represents a Type 0 sampled function that uses a table of sample
// values with interpolation to approximate functions with bounded domains
// and ranges.  The function is written as a stream.
type Type0 struct {
	pdf.ObjectBase
	pdf.StreamData

	// Domain defines the valid input ranges as [min0, max0, min1, max1, ...]
	Domain []float64

	// Range defines the valid output ranges as [min0, max0, min1, max1, ...]
	Range []float64

	// Size specifies the number of samples in each input dimension.
	Size []int

	// BitsPerSample is the number of bits per sample value (1, 2, 4, 8, 12,
	// 16, 24 or 32).
	BitsPerSample int

	// Order is the interpolation order (1 for linear, 3 for cubic spline).
	// Apply always uses linear interpolation.
	Order int

	// Encode maps inputs to sample table indices as [min0, max0, min1, max1, ...]
	// Default: [0, Size[0]-1, 0, Size[1]-1, ...]
	Encode []float64

	// Decode maps samples to output range as [min0, max0, min1, max1, ...]
	// Default: same as Range
	Decode []float64

	// Samples contains the packed sample data, with the first input
	// dimension varying fastest.
	Samples []byte
}

// FunctionType returns 0 for Type 0 functions.
func (f *Type0) FunctionType() int {
	return 0
}

// Shape returns the number of input and output values of the function.
func (f *Type0) Shape() (int, int) {
	return len(f.Domain) / 2, len(f.Range) / 2
}

// Category implements the [pdf.Shareable] interface.
func (f *Type0) Category() pdf.Category {
	return pdf.CategoryFunction
}

// Equal implements the [pdf.Shareable] interface.
func (f *Type0) Equal(other pdf.Shareable) bool {
	g, ok := other.(*Type0)
	if !ok || len(f.Size) != len(g.Size) {
		return false
	}
	for i, s := range f.Size {
		if s != g.Size[i] {
			return false
		}
	}
	return f.BitsPerSample == g.BitsPerSample && f.order() == g.order() &&
		equalFloats(f.Domain, g.Domain) && equalFloats(f.Range, g.Range) &&
		equalFloats(f.Encode, g.Encode) && equalFloats(f.Decode, g.Decode) &&
		bytes.Equal(f.Samples, g.Samples)
}

func (f *Type0) order() int {
	if f.Order == 0 {
		return 1
	}
	return f.Order
}

// Apply applies the function to the given input values and returns the
// output values.
func (f *Type0) Apply(inputs ...float64) []float64 {
	m, n := f.Shape()

	// position in the sample table, for each input dimension
	idx := make([]float64, m)
	for i := range m {
		x := clip(inputs[i], f.Domain[2*i], f.Domain[2*i+1])
		e0, e1 := 0.0, float64(f.Size[i]-1)
		if f.Encode != nil {
			e0, e1 = f.Encode[2*i], f.Encode[2*i+1]
		}
		idx[i] = clip(interpolate(x, f.Domain[2*i], f.Domain[2*i+1], e0, e1),
			0, float64(f.Size[i]-1))
	}

	// multilinear interpolation between the 2^m corners of the cell
	res := make([]float64, n)
	corner := make([]int, m)
	for c := 0; c < 1<<m; c++ {
		weight := 1.0
		for i := range m {
			lo := int(math.Floor(idx[i]))
			if lo >= f.Size[i]-1 {
				lo = max(f.Size[i]-2, 0)
			}
			frac := idx[i] - float64(lo)
			if c&(1<<i) != 0 {
				corner[i] = min(lo+1, f.Size[i]-1)
				weight *= frac
			} else {
				corner[i] = lo
				weight *= 1 - frac
			}
		}
		if weight == 0 {
			continue
		}
		pos := 0
		stride := 1
		for i := range m {
			pos += corner[i] * stride
			stride *= f.Size[i]
		}
		for j := range n {
			res[j] += weight * float64(f.sample(pos*n+j))
		}
	}

	maxSample := float64(uint64(1)<<f.BitsPerSample - 1)
	decode := f.Decode
	if decode == nil {
		decode = f.Range
	}
	for j := range res {
		res[j] = interpolate(res[j], 0, maxSample, decode[2*j], decode[2*j+1])
	}
	clipOutputs(res, f.Range)
	return res
}

// sample returns the k-th sample value from the packed sample data.
func (f *Type0) sample(k int) uint32 {
	bps := f.BitsPerSample
	bitPos := k * bps
	var val uint32
	for b := 0; b < bps; b++ {
		byteIdx := (bitPos + b) / 8
		if byteIdx >= len(f.Samples) {
			return 0
		}
		bit := (f.Samples[byteIdx] >> (7 - uint((bitPos+b)%8))) & 1
		val = val<<1 | uint32(bit)
	}
	return val
}

// PDF implements the [pdf.Object] interface.
func (f *Type0) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"FunctionType":  pdf.Integer(0),
		"Domain":        arrayFromFloats(f.Domain),
		"Range":         arrayFromFloats(f.Range),
		"Size":          arrayFromInts(f.Size),
		"BitsPerSample": pdf.Integer(f.BitsPerSample),
	}
	if f.order() != 1 {
		dict["Order"] = pdf.Integer(f.Order)
	}
	if f.Encode != nil {
		dict["Encode"] = arrayFromFloats(f.Encode)
	}
	if f.Decode != nil {
		dict["Decode"] = arrayFromFloats(f.Decode)
	}
	f.StreamData.Dict = dict
	f.StreamData.SetData(f.Samples)
	return f.StreamData.PDF(w)
}

func (f *Type0) validate() error {
	m, n := f.Shape()
	if m == 0 || len(f.Domain) != 2*m {
		return invalid(0, "Domain", "invalid length %d", len(f.Domain))
	}
	if err := checkRanges(0, "Domain", f.Domain, m, false); err != nil {
		return err
	}
	if n == 0 || len(f.Range) != 2*n {
		return invalid(0, "Range", "invalid length %d", len(f.Range))
	}
	if err := checkRanges(0, "Range", f.Range, n, false); err != nil {
		return err
	}
	if len(f.Size) != m {
		return invalid(0, "Size", "invalid length %d", len(f.Size))
	}
	total := 1
	for i, s := range f.Size {
		if s <= 0 {
			return invalid(0, "Size", "size[%d] must be positive", i)
		}
		total *= s
	}
	switch f.BitsPerSample {
	case 1, 2, 4, 8, 12, 16, 24, 32:
	default:
		return invalid(0, "BitsPerSample", "invalid value %d", f.BitsPerSample)
	}
	if o := f.order(); o != 1 && o != 3 {
		return invalid(0, "Order", "must be 1 or 3, got %d", o)
	}
	if f.Encode != nil && len(f.Encode) != 2*m {
		return invalid(0, "Encode", "invalid length %d", len(f.Encode))
	}
	if f.Decode != nil && len(f.Decode) != 2*n {
		return invalid(0, "Decode", "invalid length %d", len(f.Decode))
	}
	need := (total*n*f.BitsPerSample + 7) / 8
	if len(f.Samples) < need {
		return invalid(0, "Samples", "need %d bytes, got %d", need, len(f.Samples))
	}
	return nil
}
