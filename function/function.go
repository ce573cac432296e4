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

	"golang.org/x/exp/slices"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Function is a PDF function.
type Function interface {
	pdf.Shareable

	// FunctionType returns the PDF function type, 0, 2, 3 or 4.
	FunctionType() int

	// Shape returns the number of input and output values of the function.
	Shape() (int, int)

	// Ref returns the reference of the function, or 0 if the function has
	// not been registered.
	Ref() pdf.Reference

	validate() error
}

var minVersion = map[int]pdf.Version{
	0: pdf.V1_2,
	2: pdf.V1_3,
	3: pdf.V1_3,
	4: pdf.V1_3,
}

// Share validates f and registers it with doc.  If doc already contains a
// function equal to f, the reference of the existing function is returned
// and f is not written.
//
// The component functions of a [Type3] function are shared first, and
// replaced by their registered equivalents.
func Share(doc *pdf.Document, f Function) (pdf.Reference, error) {
	if t3, ok := f.(*Type3); ok {
		for i, sub := range t3.Functions {
			_, err := Share(doc, sub)
			if err != nil {
				return 0, err
			}
			if found, ok := doc.Find(sub).(Function); ok {
				t3.Functions[i] = found
			}
		}
	}

	err := f.validate()
	if err != nil {
		return 0, err
	}
	tp := f.FunctionType()
	err = doc.RequireVersion(fmt.Sprintf("Type %d functions", tp), minVersion[tp])
	if err != nil {
		return 0, err
	}
	return doc.Share(f)
}

func equalFloats(a, b []float64) bool {
	return slices.Equal(a, b)
}
