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


package shading

import (
	"errors"
	"io"

	"seehuhn.de/go/geom/matrix"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Pattern represents the pattern dictionary for a shading pattern
// (pattern type 2).
//
// See section 8.7.4 (Type2 patterns) of ISO 32000-2:2020.
type Pattern struct {
	pdf.ObjectBase

	Shading *Shading
	Matrix  matrix.Matrix

	// ExtGState optionally refers to an extended graphics state dictionary.
	ExtGState pdf.Reference
}

// Category implements the [pdf.Shareable] interface.
func (p *Pattern) Category() pdf.Category {
	return pdf.CategoryPattern
}

// Equal implements the [pdf.Shareable] interface.
func (p *Pattern) Equal(other pdf.Shareable) bool {
	q, ok := other.(*Pattern)
	if !ok || p.Matrix != q.Matrix || p.ExtGState != q.ExtGState {
		return false
	}
	return p.Shading == q.Shading || p.Shading.Equal(q.Shading)
}

// PDF implements the [pdf.Object] interface.
func (p *Pattern) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"Type":        pdf.Name("Pattern"),
		"PatternType": pdf.Integer(2),
		"Shading":     p.Shading.Ref(),
	}
	if p.Matrix != matrix.Identity && p.Matrix != matrix.Zero {
		dict["Matrix"] = toPDF(p.Matrix[:])
	}
	if p.ExtGState != 0 {
		dict["ExtGState"] = p.ExtGState
	}
	return dict.PDF(w)
}

// SharePattern registers p with doc, together with its shading.  If doc
// already contains an equal pattern, the reference of the existing pattern
// is returned.
func SharePattern(doc *pdf.Document, p *Pattern) (pdf.Reference, error) {
	if p.Shading == nil {
		return 0, errors.New("pattern: missing shading")
	}
	_, err := Share(doc, p.Shading)
	if err != nil {
		return 0, err
	}
	if found, ok := doc.Find(p.Shading).(*Shading); ok {
		p.Shading = found
	}
	return doc.Share(p)
}
