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


// Package shading implements axial and radial shadings, and the shading
// patterns built from them.
//
// Shadings and patterns are deduplicated by the document.  Use [Share] to
// write a shading, and [SharePattern] to write a pattern.  The resource
// names assigned by the document ("Sh1", "Pa1", ...) are available through
// [pdf.Document.ResourceName].
package shading

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/rect"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/color"
	"github.com/apache/xmlgraphics-fop-sub006/function"
)

// Shading is an axial or radial shading.
type Shading struct {
	pdf.ObjectBase

	// Radial selects a radial (type 3) shading.  Otherwise the shading is
	// axial (type 2).
	Radial bool

	ColorSpace color.Space

	// Coords holds the coordinates [x0 y0 x1 y1] of the axis for axial
	// shadings, and [x0 y0 r0 x1 y1 r1] of the two circles for radial
	// shadings.
	Coords []float64

	// Function maps the parameter t to the color components.  It must have
	// one input and as many outputs as the color space has channels.
	Function function.Function

	// TMin and TMax give the parameter range.  The default is [0 1].
	TMin, TMax float64

	ExtendStart bool
	ExtendEnd   bool

	Background []float64
	BBox       *rect.Rect
	AntiAlias  bool
}

// ShadingType returns 2 for axial and 3 for radial shadings.
func (s *Shading) ShadingType() int {
	if s.Radial {
		return 3
	}
	return 2
}

// Category implements the [pdf.Shareable] interface.
func (s *Shading) Category() pdf.Category {
	return pdf.CategoryShading
}

// Equal implements the [pdf.Shareable] interface.
func (s *Shading) Equal(other pdf.Shareable) bool {
	t, ok := other.(*Shading)
	if !ok {
		return false
	}
	if s.Radial != t.Radial ||
		s.TMin != t.TMin || s.TMax != t.TMax ||
		s.ExtendStart != t.ExtendStart || s.ExtendEnd != t.ExtendEnd ||
		s.AntiAlias != t.AntiAlias ||
		!slices.Equal(s.Coords, t.Coords) ||
		!slices.Equal(s.Background, t.Background) {
		return false
	}
	if (s.BBox == nil) != (t.BBox == nil) || s.BBox != nil && *s.BBox != *t.BBox {
		return false
	}
	if pdf.Format(s.ColorSpace) != pdf.Format(t.ColorSpace) {
		return false
	}
	if s.Function == nil || t.Function == nil {
		return s.Function == t.Function
	}
	return s.Function == t.Function || s.Function.Equal(t.Function)
}

func (s *Shading) validate() error {
	if s.ColorSpace == nil {
		return errors.New("shading: missing color space")
	}
	if s.ShadingType() == 3 {
		if len(s.Coords) != 6 {
			return fmt.Errorf("shading: expected 6 coordinates, got %d", len(s.Coords))
		}
		if s.Coords[2] < 0 || s.Coords[5] < 0 {
			return errors.New("shading: negative radius")
		}
	} else if len(s.Coords) != 4 {
		return fmt.Errorf("shading: expected 4 coordinates, got %d", len(s.Coords))
	}
	if s.Function == nil {
		return errors.New("shading: missing function")
	}
	m, n := s.Function.Shape()
	if m != 1 || n != s.ColorSpace.Channels() {
		return fmt.Errorf("shading: function has shape %d->%d, want 1->%d",
			m, n, s.ColorSpace.Channels())
	}
	if len(s.Background) > 0 && len(s.Background) != s.ColorSpace.Channels() {
		return fmt.Errorf("shading: wrong number of background values: expected %d, got %d",
			s.ColorSpace.Channels(), len(s.Background))
	}
	if s.TMin > s.TMax {
		return fmt.Errorf("shading: invalid domain [%g, %g]", s.TMin, s.TMax)
	}
	return nil
}

// PDF implements the [pdf.Object] interface.
func (s *Shading) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"ShadingType": pdf.Integer(s.ShadingType()),
		"ColorSpace":  s.ColorSpace,
		"Coords":      toPDF(s.Coords),
		"Function":    s.Function.Ref(),
	}
	if len(s.Background) > 0 {
		dict["Background"] = toPDF(s.Background)
	}
	if s.BBox != nil {
		dict["BBox"] = pdf.Rectangle(*s.BBox)
	}
	if s.AntiAlias {
		dict["AntiAlias"] = pdf.Bool(true)
	}
	if s.TMin != 0 || (s.TMax != 0 && s.TMax != 1) {
		dict["Domain"] = pdf.Array{pdf.Number(s.TMin), pdf.Number(s.TMax)}
	}
	if s.ExtendStart || s.ExtendEnd {
		dict["Extend"] = pdf.Array{pdf.Bool(s.ExtendStart), pdf.Bool(s.ExtendEnd)}
	}
	return dict.PDF(w)
}

// Share validates s and registers it with doc, together with its function.
// If doc already contains an equal shading, the reference of the existing
// shading is returned.
func Share(doc *pdf.Document, s *Shading) (pdf.Reference, error) {
	if s.TMin == 0 && s.TMax == 0 {
		s.TMax = 1
	}
	err := s.validate()
	if err != nil {
		return 0, err
	}
	_, err = function.Share(doc, s.Function)
	if err != nil {
		return 0, err
	}
	if found, ok := doc.Find(s.Function).(function.Function); ok {
		s.Function = found
	}
	return doc.Share(s)
}

func toPDF(x []float64) pdf.Array {
	res := make(pdf.Array, len(x))
	for i, xi := range x {
		res[i] = pdf.Number(xi)
	}
	return res
}
