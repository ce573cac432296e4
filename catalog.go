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

package pdf

import (
	"errors"
	"io"
	"time"

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"
)

// Catalog represents a PDF Document Catalog.  The catalog of a document is
// created by [NewDocument] and written by [Document.WriteTrailer].
//
// The Document Catalog is documented in section 7.7.2 of ISO 32000-2:2020.
type Catalog struct {
	ObjectBase

	pages *Pages

	// Lang is the natural language of the document.
	Lang language.Tag

	// Metadata is the XMP metadata stream of the document.
	Metadata Reference

	// OutputIntents lists the output intents of the document.
	OutputIntents Array

	// MarkInfo describes the use of tagged PDF.
	MarkInfo Dict

	// StructTreeRoot is the root of the structure tree.
	StructTreeRoot Reference

	// Outlines is the root of the document outline.
	Outlines Reference

	// Names is the document's name dictionary.
	Names Dict

	PageMode   Name
	PageLayout Name
	OpenAction Object

	// Extra holds additional entries for the catalog dictionary.
	Extra Dict
}

// PDF implements the [Object] interface.
func (c *Catalog) PDF(w io.Writer) error {
	dict := Dict{
		"Type":  Name("Catalog"),
		"Pages": c.pages.ref,
	}
	for key, val := range c.Extra {
		dict[key] = val
	}
	if pw, ok := w.(*posWriter); ok && pw.doc != nil {
		vc := pw.doc.version
		if vc.cur > vc.header {
			dict["Version"] = Name(vc.cur.String())
		}
	}
	if c.Lang != language.Und {
		dict["Lang"] = TextString(c.Lang.String())
	}
	if c.Metadata != 0 {
		dict["Metadata"] = c.Metadata
	}
	if len(c.OutputIntents) > 0 {
		dict["OutputIntents"] = c.OutputIntents
	}
	if c.MarkInfo != nil {
		dict["MarkInfo"] = c.MarkInfo
	}
	if c.StructTreeRoot != 0 {
		dict["StructTreeRoot"] = c.StructTreeRoot
	}
	if c.Outlines != 0 {
		dict["Outlines"] = c.Outlines
	}
	if len(c.Names) > 0 {
		dict["Names"] = c.Names
	}
	if c.PageMode != "" {
		dict["PageMode"] = c.PageMode
	}
	if c.PageLayout != "" {
		dict["PageLayout"] = c.PageLayout
	}
	if c.OpenAction != nil {
		dict["OpenAction"] = c.OpenAction
	}
	return dict.PDF(w)
}

// Pages is the root of the page tree.  All pages are direct children of the
// root.
type Pages struct {
	ObjectBase
	kids []*Page
}

// PDF implements the [Object] interface.
func (p *Pages) PDF(w io.Writer) error {
	kids := make(Array, len(p.kids))
	for i, page := range p.kids {
		kids[i] = page.ref
	}
	dict := Dict{
		"Type":  Name("Pages"),
		"Kids":  kids,
		"Count": Integer(len(p.kids)),
	}
	return dict.PDF(w)
}

// Len returns the number of pages.
func (p *Pages) Len() int {
	return len(p.kids)
}

// Page is a page of the document.
type Page struct {
	ObjectBase
	parent *Pages

	MediaBox  rect.Rect
	CropBox   *rect.Rect
	Resources Dict
	Contents  []Reference
	Annots    []Reference
	Rotate    int

	// StructParents is the key of the page in the structure parent tree,
	// or -1 if there is none.
	StructParents int

	// Extra holds additional entries for the page dictionary.
	Extra Dict
}

// NewPage creates a new page and appends it to the page tree.  The page is
// assigned an object number immediately, so that it can be used as the
// target of links.  Once the page is complete, it must be added to the
// document using [Document.Add].
func (d *Document) NewPage(mediaBox rect.Rect) (*Page, error) {
	if d.trailerWritten {
		return nil, errTrailerWritten
	}
	if mediaBox.IsZero() {
		return nil, errors.New("empty media box")
	}
	page := &Page{
		parent:        d.pages,
		MediaBox:      mediaBox,
		StructParents: -1,
	}
	_, err := d.AssignNumber(page)
	if err != nil {
		return nil, err
	}
	d.pages.kids = append(d.pages.kids, page)
	return page, nil
}

// PDF implements the [Object] interface.
func (p *Page) PDF(w io.Writer) error {
	dict := Dict{
		"Type":     Name("Page"),
		"Parent":   p.parent.ref,
		"MediaBox": rectArray(&p.MediaBox),
	}
	for key, val := range p.Extra {
		dict[key] = val
	}
	if p.CropBox != nil {
		dict["CropBox"] = rectArray(p.CropBox)
	}
	if p.Resources != nil {
		dict["Resources"] = p.Resources
	} else {
		dict["Resources"] = Dict{}
	}
	switch len(p.Contents) {
	case 0:
	case 1:
		dict["Contents"] = p.Contents[0]
	default:
		contents := make(Array, len(p.Contents))
		for i, ref := range p.Contents {
			contents[i] = ref
		}
		dict["Contents"] = contents
	}
	if len(p.Annots) > 0 {
		annots := make(Array, len(p.Annots))
		for i, ref := range p.Annots {
			annots[i] = ref
		}
		dict["Annots"] = annots
	}
	if p.Rotate != 0 {
		dict["Rotate"] = Integer(p.Rotate)
	}
	if p.StructParents >= 0 {
		dict["StructParents"] = Integer(p.StructParents)
	}
	return dict.PDF(w)
}

// AddResource adds an entry to the resource dictionary of the page,
// e.g. AddResource("Font", "F1", ref).
func (p *Page) AddResource(category, name Name, obj Object) {
	if p.Resources == nil {
		p.Resources = Dict{}
	}
	sub, _ := p.Resources[category].(Dict)
	if sub == nil {
		sub = Dict{}
		p.Resources[category] = sub
	}
	sub[name] = obj
}

// rectArray converts a rectangle to a PDF array.
func rectArray(r *rect.Rect) Array {
	return Array{
		Number(r.LLx), Number(r.LLy),
		Number(r.URx), Number(r.URy),
	}
}

// Rectangle converts a rectangle to a PDF array.
func Rectangle(r rect.Rect) Array {
	return rectArray(&r)
}

// Info represents the document information dictionary.
//
// The information dictionary is documented in section 14.3.3 of
// ISO 32000-2:2020.
type Info struct {
	ObjectBase

	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string

	CreationDate time.Time
	ModDate      time.Time

	// Trapped is "True", "False" or "Unknown".
	Trapped Name

	// Custom holds additional, user defined entries.
	Custom map[string]string
}

// PDF implements the [Object] interface.
func (info *Info) PDF(w io.Writer) error {
	dict := Dict{}
	for key, val := range info.Custom {
		dict[Name(key)] = TextString(val)
	}
	text := []struct {
		key Name
		val string
	}{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Subject", info.Subject},
		{"Keywords", info.Keywords},
		{"Creator", info.Creator},
		{"Producer", info.Producer},
	}
	for _, e := range text {
		if e.val != "" {
			dict[e.key] = TextString(e.val)
		}
	}
	if !info.CreationDate.IsZero() {
		dict["CreationDate"] = Date(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		dict["ModDate"] = Date(info.ModDate)
	}
	if info.Trapped != "" {
		dict["Trapped"] = info.Trapped
	}
	return dict.PDF(w)
}
