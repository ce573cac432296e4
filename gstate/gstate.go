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


// Package gstate implements extended graphics state dictionaries.
//
// Graphics states are deduplicated by the document and are assigned the
// resource names "GS1", "GS2", ...
package gstate

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Bits records which parameters of an [ExtGState] are set.
type Bits uint32

// These are the parameters which can be set by an extended graphics state.
const (
	LineWidth Bits = 1 << iota
	LineCap
	LineJoin
	MiterLimit
	DashPattern
	RenderingIntent
	StrokeAdjustment
	BlendMode
	SoftMask
	StrokeAlpha
	FillAlpha
	AlphaIsShape
	Overprint
	OverprintMode
)

// ExtGState represents a combination of graphics state parameters.  Only
// the parameters listed in Set are written.
//
// Extended graphics states are documented in section 8.4.5 of ISO
// 32000-2:2020.
type ExtGState struct {
	pdf.ObjectBase

	Set Bits

	LineWidth        float64
	LineCap          int
	LineJoin         int
	MiterLimit       float64
	DashPattern      []float64
	DashPhase        float64
	RenderingIntent  pdf.Name
	StrokeAdjustment bool
	BlendMode        pdf.Name

	// SoftMask is either the name /None or a reference to a soft-mask
	// dictionary.
	SoftMask pdf.Object

	StrokeAlpha     float64
	FillAlpha       float64
	AlphaIsShape    bool
	OverprintStroke bool
	OverprintFill   bool
	OverprintMode   int
}

// Category implements the [pdf.Shareable] interface.
func (gs *ExtGState) Category() pdf.Category {
	return pdf.CategoryGState
}

// Equal implements the [pdf.Shareable] interface.
func (gs *ExtGState) Equal(other pdf.Shareable) bool {
	o, ok := other.(*ExtGState)
	if !ok || gs.Set != o.Set {
		return false
	}
	set := gs.Set
	switch {
	case set&LineWidth != 0 && gs.LineWidth != o.LineWidth,
		set&LineCap != 0 && gs.LineCap != o.LineCap,
		set&LineJoin != 0 && gs.LineJoin != o.LineJoin,
		set&MiterLimit != 0 && gs.MiterLimit != o.MiterLimit,
		set&DashPattern != 0 && (gs.DashPhase != o.DashPhase || !slices.Equal(gs.DashPattern, o.DashPattern)),
		set&RenderingIntent != 0 && gs.RenderingIntent != o.RenderingIntent,
		set&StrokeAdjustment != 0 && gs.StrokeAdjustment != o.StrokeAdjustment,
		set&BlendMode != 0 && gs.BlendMode != o.BlendMode,
		set&SoftMask != 0 && pdf.Format(gs.SoftMask) != pdf.Format(o.SoftMask),
		set&StrokeAlpha != 0 && gs.StrokeAlpha != o.StrokeAlpha,
		set&FillAlpha != 0 && gs.FillAlpha != o.FillAlpha,
		set&AlphaIsShape != 0 && gs.AlphaIsShape != o.AlphaIsShape,
		set&Overprint != 0 && (gs.OverprintStroke != o.OverprintStroke || gs.OverprintFill != o.OverprintFill),
		set&OverprintMode != 0 && gs.OverprintMode != o.OverprintMode:
		return false
	}
	return true
}

// usesTransparency reports whether the graphics state uses any of the
// transparency features introduced in PDF 1.4.
func (gs *ExtGState) usesTransparency() string {
	switch {
	case gs.Set&StrokeAlpha != 0 && gs.StrokeAlpha < 1:
		return "CA"
	case gs.Set&FillAlpha != 0 && gs.FillAlpha < 1:
		return "ca"
	case gs.Set&SoftMask != 0 && gs.SoftMask != pdf.Name("None"):
		return "SMask"
	case gs.Set&BlendMode != 0 && gs.BlendMode != "Normal" && gs.BlendMode != "Compatible":
		return "BM"
	}
	return ""
}

func (gs *ExtGState) validate() error {
	if gs.Set&LineWidth != 0 && gs.LineWidth < 0 {
		return fmt.Errorf("ExtGState: invalid line width %g", gs.LineWidth)
	}
	if gs.Set&LineCap != 0 && (gs.LineCap < 0 || gs.LineCap > 2) {
		return fmt.Errorf("ExtGState: invalid line cap %d", gs.LineCap)
	}
	if gs.Set&LineJoin != 0 && (gs.LineJoin < 0 || gs.LineJoin > 2) {
		return fmt.Errorf("ExtGState: invalid line join %d", gs.LineJoin)
	}
	if gs.Set&MiterLimit != 0 && gs.MiterLimit < 1 {
		return fmt.Errorf("ExtGState: invalid miter limit %g", gs.MiterLimit)
	}
	for _, bit := range []Bits{StrokeAlpha, FillAlpha} {
		alpha := gs.StrokeAlpha
		if bit == FillAlpha {
			alpha = gs.FillAlpha
		}
		if gs.Set&bit != 0 && (alpha < 0 || alpha > 1) {
			return fmt.Errorf("ExtGState: invalid alpha value %g", alpha)
		}
	}
	if gs.Set&OverprintMode != 0 && gs.OverprintMode != 0 && gs.OverprintMode != 1 {
		return fmt.Errorf("ExtGState: invalid overprint mode %d", gs.OverprintMode)
	}
	return nil
}

// PDF implements the [pdf.Object] interface.
func (gs *ExtGState) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"Type": pdf.Name("ExtGState"),
	}
	set := gs.Set
	if set&LineWidth != 0 {
		dict["LW"] = pdf.Number(gs.LineWidth)
	}
	if set&LineCap != 0 {
		dict["LC"] = pdf.Integer(gs.LineCap)
	}
	if set&LineJoin != 0 {
		dict["LJ"] = pdf.Integer(gs.LineJoin)
	}
	if set&MiterLimit != 0 {
		dict["ML"] = pdf.Number(gs.MiterLimit)
	}
	if set&DashPattern != 0 {
		pat := make(pdf.Array, len(gs.DashPattern))
		for i, x := range gs.DashPattern {
			pat[i] = pdf.Number(x)
		}
		dict["D"] = pdf.Array{pat, pdf.Number(gs.DashPhase)}
	}
	if set&RenderingIntent != 0 {
		dict["RI"] = gs.RenderingIntent
	}
	if set&StrokeAdjustment != 0 {
		dict["SA"] = pdf.Bool(gs.StrokeAdjustment)
	}
	if set&BlendMode != 0 {
		dict["BM"] = gs.BlendMode
	}
	if set&SoftMask != 0 {
		dict["SMask"] = gs.SoftMask
	}
	if set&StrokeAlpha != 0 {
		dict["CA"] = pdf.Number(gs.StrokeAlpha)
	}
	if set&FillAlpha != 0 {
		dict["ca"] = pdf.Number(gs.FillAlpha)
	}
	if set&AlphaIsShape != 0 {
		dict["AIS"] = pdf.Bool(gs.AlphaIsShape)
	}
	if set&Overprint != 0 {
		dict["OP"] = pdf.Bool(gs.OverprintStroke)
		dict["op"] = pdf.Bool(gs.OverprintFill)
	}
	if set&OverprintMode != 0 {
		dict["OPM"] = pdf.Integer(gs.OverprintMode)
	}
	return dict.PDF(w)
}

// Share validates gs and registers it with doc.  If doc already contains an
// equal graphics state, the reference of the existing one is returned.
func Share(doc *pdf.Document, gs *ExtGState) (pdf.Reference, error) {
	err := gs.validate()
	if err != nil {
		return 0, err
	}
	err = doc.RequireVersion("extended graphics states", pdf.V1_2)
	if err != nil {
		return 0, err
	}
	if feature := gs.usesTransparency(); feature != "" {
		err = doc.Profile().VerifyTransparencyAllowed(feature)
		if err != nil {
			return 0, err
		}
		err = doc.RequireVersion("transparency", pdf.V1_4)
		if err != nil {
			return 0, err
		}
	}
	return doc.Share(gs)
}
