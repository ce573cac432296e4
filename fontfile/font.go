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

package fontfile

import (
	"errors"
	"io"
	"math"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/internal/float"
)

// PDF 2.0 sections: 9.6.2 9.8

// The standard 14 fonts, which need not be embedded.
var standard14 = map[string]bool{
	"Courier": true, "Courier-Bold": true, "Courier-Oblique": true, "Courier-BoldOblique": true,
	"Helvetica": true, "Helvetica-Bold": true, "Helvetica-Oblique": true, "Helvetica-BoldOblique": true,
	"Times-Roman": true, "Times-Bold": true, "Times-Italic": true, "Times-BoldItalic": true,
	"Symbol": true, "ZapfDingbats": true,
}

// Font is a simple font dictionary.  Fonts use WinAnsiEncoding for
// character codes 32 to 255, except for embedded Type 1 fonts, which use
// their built-in encoding.
type Font struct {
	pdf.ObjectBase

	// Key identifies the font within the document.  Fonts with the same
	// key are written only once.
	Key string

	Subtype  pdf.Name
	BaseFont pdf.Name

	// Widths holds the glyph widths for the codes 32 to 255, in PDF glyph
	// space units.
	Widths []float64

	// Descriptor is the font descriptor.  This is nil for the standard 14
	// fonts.
	Descriptor pdf.Dict

	// Program is the embedded font program, if any.
	Program *Program

	builtinEncoding bool

	descriptor *pdf.DictObject
}

const (
	firstChar = 32
	lastChar  = 255
)

// Descriptor flags.
const (
	flagFixedPitch  = 1 << 0
	flagSerif       = 1 << 1
	flagScript      = 1 << 3
	flagNonsymbolic = 1 << 5
	flagItalic      = 1 << 6
)

// Category implements the [pdf.Shareable] interface.
func (f *Font) Category() pdf.Category {
	return pdf.CategoryFont
}

// Equal implements the [pdf.Shareable] interface.  Fonts are compared by
// key.
func (f *Font) Equal(other pdf.Shareable) bool {
	o, ok := other.(*Font)
	return ok && f.Key != "" && f.Key == o.Key
}

// PDF implements the [pdf.Object] interface.
func (f *Font) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  f.Subtype,
		"BaseFont": f.BaseFont,
	}
	if !f.builtinEncoding {
		dict["Encoding"] = pdf.Name("WinAnsiEncoding")
	}
	if f.Widths != nil {
		widths := make(pdf.Array, len(f.Widths))
		for i, w := range f.Widths {
			widths[i] = pdf.Number(float.Round(w, 1))
		}
		dict["FirstChar"] = pdf.Integer(firstChar)
		dict["LastChar"] = pdf.Integer(firstChar + len(f.Widths) - 1)
		dict["Widths"] = widths
	}
	if f.descriptor != nil {
		dict["FontDescriptor"] = f.descriptor.Ref()
	}
	return dict.PDF(w)
}

// Share writes the font to the document.  If a font with the same key has
// been written before, its reference is returned instead.  The resource
// name of the font can be obtained using [pdf.Document.ResourceName].
func Share(doc *pdf.Document, f *Font) (pdf.Reference, error) {
	if f.Key == "" {
		return 0, errors.New("font without key")
	}
	if doc.Find(f) != nil {
		return doc.Share(f)
	}

	if f.Program == nil {
		if doc.Profile().IsPDFA() || doc.Profile().IsPDFX() {
			return 0, &pdf.ConformanceError{
				Profile:   doc.Profile(),
				Operation: "non-embedded font " + string(f.BaseFont),
			}
		}
	} else {
		if f.Program.Kind == KindOpenType {
			err := doc.RequireVersion("OpenType font", pdf.V1_6)
			if err != nil {
				return 0, err
			}
		}
		if f.Program.doc != nil && f.Program.doc != doc {
			return 0, errors.New("font program belongs to a different document")
		}
		if !f.Program.HasNumber() {
			f.Program.doc = doc
			_, err := doc.Register(f.Program)
			if err != nil {
				return 0, err
			}
		}
	}

	if f.Descriptor != nil {
		desc := pdf.Dict{}
		for key, val := range f.Descriptor {
			desc[key] = val
		}
		desc["Type"] = pdf.Name("FontDescriptor")
		desc["FontName"] = f.BaseFont
		if f.Program != nil {
			desc[f.Program.Kind.descriptorKey()] = f.Program.Ref()
		}
		f.descriptor = pdf.NewDictObject(desc)
		_, err := doc.Register(f.descriptor)
		if err != nil {
			return 0, err
		}
	}
	return doc.Share(f)
}

// NewStandard returns one of the standard 14 fonts.  These fonts are not
// embedded, and are not allowed in PDF/A and PDF/X documents.
func NewStandard(key, name string) (*Font, error) {
	if !standard14[name] {
		return nil, errors.New("not a standard font: " + name)
	}
	return &Font{
		Key:      key,
		Subtype:  "Type1",
		BaseFont: pdf.Name(name),
	}, nil
}

// NewSFNT returns a font which embeds the given TrueType or CFF-based
// OpenType font.
func NewSFNT(key string, info *sfnt.Font) (*Font, error) {
	var kind Kind
	var subtype pdf.Name
	switch {
	case info.IsGlyf():
		kind, subtype = KindTrueType, "TrueType"
	case info.IsCFF():
		kind, subtype = KindOpenType, "Type1"
	default:
		return nil, errors.New("unsupported font outlines")
	}
	if info.UnitsPerEm == 0 {
		return nil, errors.New("invalid UnitsPerEm")
	}
	q := 1000 / float64(info.UnitsPerEm)

	cmap, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	widths := make([]float64, lastChar-firstChar+1)
	for code := firstChar; code <= lastChar; code++ {
		r := charmap.Windows1252.DecodeByte(byte(code))
		if r == '\uFFFD' {
			continue
		}
		if gid := cmap.Lookup(r); gid != 0 {
			widths[code-firstChar] = info.GlyphWidth(gid) * q
		}
	}

	flags := flagNonsymbolic
	if info.IsFixedPitch() {
		flags |= flagFixedPitch
	}
	if info.IsSerif {
		flags |= flagSerif
	}
	if info.IsScript {
		flags |= flagScript
	}
	if info.IsItalic {
		flags |= flagItalic
	}
	bbox := info.FontBBox()
	desc := pdf.Dict{
		"Flags": pdf.Integer(flags),
		"FontBBox": pdf.Array{
			pdf.Number(math.Round(bbox.LLx.AsFloat(q))),
			pdf.Number(math.Round(bbox.LLy.AsFloat(q))),
			pdf.Number(math.Round(bbox.URx.AsFloat(q))),
			pdf.Number(math.Round(bbox.URy.AsFloat(q))),
		},
		"ItalicAngle": pdf.Number(info.ItalicAngle),
		"Ascent":      pdf.Number(math.Round(info.Ascent.AsFloat(q))),
		"Descent":     pdf.Number(math.Round(info.Descent.AsFloat(q))),
		"CapHeight":   pdf.Number(math.Round(info.CapHeight.AsFloat(q))),
		"StemV":       pdf.Integer(70), // not available in sfnt files
	}

	return &Font{
		Key:        key,
		Subtype:    subtype,
		BaseFont:   pdf.Name(info.PostScriptName()),
		Widths:     widths,
		Descriptor: desc,
		Program:    &Program{Kind: kind, sfnt: info},
	}, nil
}

// NewType1 returns a font which embeds the given Type 1 font.  The glyphs
// are selected through the font's built-in encoding.
func NewType1(key string, psFont *type1.Font) (*Font, error) {
	if psFont.FontInfo == nil || psFont.FontInfo.FontName == "" {
		return nil, errors.New("Type 1 font without name")
	}
	if psFont.Outlines == nil || psFont.Private == nil {
		return nil, errors.New("Type 1 font without outlines")
	}
	q := 1000 * psFont.FontInfo.FontMatrix[0]

	widths := make([]float64, lastChar-firstChar+1)
	for code := firstChar; code <= lastChar && code < len(psFont.Encoding); code++ {
		name := psFont.Encoding[code]
		if g, ok := psFont.Glyphs[name]; ok && name != ".notdef" {
			widths[code-firstChar] = float64(g.WidthX) * q
		}
	}

	flags := 0
	if psFont.FontInfo.IsFixedPitch {
		flags |= flagFixedPitch
	}
	if psFont.FontInfo.ItalicAngle != 0 {
		flags |= flagItalic
	}
	flags |= 1 << 2 // symbolic, built-in encoding
	desc := pdf.Dict{
		"Flags":       pdf.Integer(flags),
		"FontBBox":    pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(0), pdf.Integer(0)},
		"ItalicAngle": pdf.Number(psFont.FontInfo.ItalicAngle),
		"Ascent":      pdf.Integer(0),
		"Descent":     pdf.Integer(0),
		"CapHeight":   pdf.Integer(0),
		"StemV":       pdf.Number(math.Round(psFont.Private.StdVW * q)),
	}

	return &Font{
		Key:        key,
		Subtype:    "Type1",
		BaseFont:   pdf.Name(psFont.FontInfo.FontName),
		Widths:     widths,
		Descriptor: desc,
		Program:    &Program{Kind: KindType1, type1: psFont},

		builtinEncoding: true,
	}, nil
}
