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

package annotation

import (
	"errors"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Border represents the characteristics of an annotation's border.
// A nil *Border means that no border is drawn.
type Border struct {
	// HCornerRadius is the horizontal corner radius.
	HCornerRadius float64

	// VCornerRadius is the vertical corner radius.
	VCornerRadius float64

	// Width is the border width in default user space units.
	Width float64

	// DashArray (optional; PDF 1.1) defines a pattern of dashes and gaps
	// for drawing the border. If nil, a solid border is drawn.
	DashArray []float64
}

func (b *Border) encode() (pdf.Array, error) {
	if b == nil {
		return pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(0)}, nil
	}
	if b.Width < 0 || b.HCornerRadius < 0 || b.VCornerRadius < 0 {
		return nil, errors.New("negative border dimension")
	}
	res := pdf.Array{
		pdf.Number(b.HCornerRadius),
		pdf.Number(b.VCornerRadius),
		pdf.Number(b.Width),
	}
	if b.DashArray != nil {
		dash := make(pdf.Array, len(b.DashArray))
		allZero := true
		for i, x := range b.DashArray {
			if x < 0 {
				return nil, errors.New("negative dash length")
			}
			if x != 0 {
				allZero = false
			}
			dash[i] = pdf.Number(x)
		}
		if allZero {
			return nil, errors.New("dash array of zeros")
		}
		res = append(res, dash)
	}
	return res, nil
}
