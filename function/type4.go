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
	"strings"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Type4 represents a PostScript calculator function.  The function is
// written as a stream containing the program.
type Type4 struct {
	pdf.ObjectBase
	pdf.StreamData

	// Domain defines the valid input ranges as [min0, max0, min1, max1, ...]
	Domain []float64

	// Range defines the valid output ranges as [min0, max0, min1, max1, ...]
	Range []float64

	// Program contains the PostScript code (without enclosing braces)
	Program string
}

// FunctionType returns 4 for Type 4 functions.
func (f *Type4) FunctionType() int {
	return 4
}

// Shape returns the number of input and output values of the function.
func (f *Type4) Shape() (int, int) {
	return len(f.Domain) / 2, len(f.Range) / 2
}

// Category implements the [pdf.Shareable] interface.
func (f *Type4) Category() pdf.Category {
	return pdf.CategoryFunction
}

// Equal implements the [pdf.Shareable] interface.
func (f *Type4) Equal(other pdf.Shareable) bool {
	g, ok := other.(*Type4)
	return ok && equalFloats(f.Domain, g.Domain) &&
		equalFloats(f.Range, g.Range) &&
		strings.TrimSpace(f.Program) == strings.TrimSpace(g.Program)
}

// PDF implements the [pdf.Object] interface.
func (f *Type4) PDF(w io.Writer) error {
	f.StreamData.Dict = pdf.Dict{
		"FunctionType": pdf.Integer(4),
		"Domain":       arrayFromFloats(f.Domain),
		"Range":        arrayFromFloats(f.Range),
	}
	f.StreamData.SetData([]byte("{" + strings.TrimSpace(f.Program) + "}"))
	return f.StreamData.PDF(w)
}

func (f *Type4) validate() error {
	m, n := f.Shape()
	if m == 0 || len(f.Domain) != 2*m {
		return invalid(4, "Domain", "invalid length %d", len(f.Domain))
	}
	if err := checkRanges(4, "Domain", f.Domain, m, false); err != nil {
		return err
	}
	if n == 0 || len(f.Range) != 2*n {
		return invalid(4, "Range", "invalid length %d", len(f.Range))
	}
	if err := checkRanges(4, "Range", f.Range, n, false); err != nil {
		return err
	}
	depth := 0
	for _, c := range f.Program {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth < 0 {
			break
		}
	}
	if depth != 0 {
		return invalid(4, "Program", "unbalanced braces")
	}
	return nil
}
