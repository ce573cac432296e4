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
	"io"
	"slices"

	"seehuhn.de/go/geom/rect"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/action"
	"github.com/apache/xmlgraphics-fop-sub006/destination"
)

// PDF 2.0 sections: 12.5.2 12.5.6.5

// Highlight is the visual effect when a link is activated.
type Highlight pdf.Name

// These are the highlighting modes.  The default is HighlightInvert.
const (
	HighlightNone    Highlight = "N"
	HighlightInvert  Highlight = "I"
	HighlightOutline Highlight = "O"
	HighlightPush    Highlight = "P"
)

// Link represents a hypertext link annotation.
type Link struct {
	pdf.ObjectBase

	// Rect is the active area of the link, in default user space.
	Rect rect.Rect

	// Contents (optional) is an alternate description of the link.
	Contents string

	// Flags are the annotation flags.  In PDF/A documents, FlagPrint is
	// always set.
	Flags Flags

	// Border is the border drawn around the link.
	Border *Border

	// Action (optional; PDF 1.1) is performed when the link is activated.
	// Mutually exclusive with Dest.
	//
	// This corresponds to the /A entry in the PDF annotation dictionary.
	Action action.Action

	// Dest (optional) is displayed when the link is activated.
	// Mutually exclusive with Action.
	//
	// This corresponds to the /Dest entry in the PDF annotation dictionary.
	Dest destination.Destination

	// Highlight (optional; PDF 1.2) is the highlighting mode.
	// The empty value is the same as HighlightInvert.
	Highlight Highlight

	// StructParent (PDF 1.3) is the key of the link in the structural
	// parent tree, or -1 if the link is not part of the structure tree.
	StructParent int

	dict pdf.Dict
}

// NewLink returns a link annotation which performs the given action.
func NewLink(area rect.Rect, a action.Action) *Link {
	return &Link{
		Rect:         area,
		Action:       a,
		StructParent: -1,
	}
}

// Category implements the [pdf.Shareable] interface.
func (l *Link) Category() pdf.Category {
	return pdf.CategoryLink
}

// Equal implements the [pdf.Shareable] interface.  Links are compared by
// their encoded annotation dictionaries.
func (l *Link) Equal(other pdf.Shareable) bool {
	o, ok := other.(*Link)
	return ok && l.dict != nil && o.dict != nil &&
		pdf.Format(l.dict) == pdf.Format(o.dict)
}

// PDF implements the [pdf.Object] interface.
func (l *Link) PDF(w io.Writer) error {
	if l.dict == nil {
		return errors.New("link annotation was not encoded")
	}
	return l.dict.PDF(w)
}

func (l *Link) encode(doc *pdf.Document) (pdf.Dict, error) {
	if l.Rect.IsZero() {
		return nil, errors.New("link annotation: empty rectangle")
	}
	if l.Action != nil && l.Dest != nil {
		return nil, errors.New("link annotation: both action and destination")
	}

	border, err := l.Border.encode()
	if err != nil {
		return nil, err
	}
	dict := pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": pdf.Name("Link"),
		"Rect":    pdf.Rectangle(l.Rect),
		"Border":  border,
	}
	if l.Contents != "" {
		dict["Contents"] = pdf.TextString(l.Contents)
	}

	flags := l.Flags
	if doc.Profile().IsPDFA() {
		flags = flags&^forbiddenPDFA | FlagPrint
	}
	if flags != 0 {
		dict["F"] = pdf.Integer(flags)
	}

	switch {
	case l.Action != nil:
		ref, err := action.Share(doc, l.Action)
		if err != nil {
			return nil, err
		}
		dict["A"] = ref
	case l.Dest != nil:
		d, err := l.Dest.Encode()
		if err != nil {
			return nil, err
		}
		dict["Dest"] = d
	}

	if l.Highlight != "" && l.Highlight != HighlightInvert {
		err := doc.RequireVersion("link highlighting mode", pdf.V1_2)
		if err != nil {
			return nil, err
		}
		dict["H"] = pdf.Name(l.Highlight)
	}
	if l.StructParent >= 0 {
		err := doc.RequireVersion("StructParent entry", pdf.V1_3)
		if err != nil {
			return nil, err
		}
		dict["StructParent"] = pdf.Integer(l.StructParent)
	}
	return dict, nil
}

// Add writes the link annotation and lists it in the /Annots array of the
// page.  If an identical link has been written before, the existing
// annotation is reused.
func Add(doc *pdf.Document, page *pdf.Page, l *Link) (pdf.Reference, error) {
	err := doc.Profile().VerifyAnnotAllowed()
	if err != nil {
		return 0, err
	}

	ref := l.Ref()
	if !l.HasNumber() {
		dict, err := l.encode(doc)
		if err != nil {
			return 0, err
		}
		l.dict = dict
		ref, err = doc.Share(l)
		if err != nil {
			return 0, err
		}
	}

	if page != nil && !slices.Contains(page.Annots, ref) {
		page.Annots = append(page.Annots, ref)
	}
	return ref, nil
}
