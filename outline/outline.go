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

// Package outline implements the document outline (bookmarks).
//
// The outline root and all items are registered as trailer objects when
// they are created, and are written by [pdf.Document.WriteTrailer].  This
// allows items to be added while pages are still being produced.  Actions
// and destinations are resolved when they are set, since the document
// version is locked once the trailer is written.
package outline

import (
	"errors"
	"fmt"
	"io"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/action"
	"github.com/apache/xmlgraphics-fop-sub006/destination"
)

// PDF 2.0 sections: 12.3.3

// Outline represents the root of a document outline.
type Outline struct {
	pdf.ObjectBase
	doc   *pdf.Document
	items []*Item
}

// Item represents an outline item, with a title and a destination or action.
type Item struct {
	pdf.ObjectBase

	// Title is the text displayed for this outline item.
	Title string

	// Open indicates whether the item is initially expanded.
	Open bool

	outline  *Outline
	parent   *Item
	children []*Item

	color  pdf.Array
	flags  int
	target pdf.Dict
}

// New returns the outline of a document.  The outline root is only
// created once the first item is added.
func New(doc *pdf.Document) *Outline {
	return &Outline{doc: doc}
}

// AddItem appends a new top-level item with the given title.
func (o *Outline) AddItem(title string) (*Item, error) {
	if !o.HasNumber() {
		cat := o.doc.Catalog()
		if cat.Outlines != 0 {
			return nil, errors.New("document already has an outline")
		}
		ref, err := o.doc.RegisterTrailer(o)
		if err != nil {
			return nil, err
		}
		cat.Outlines = ref
	}
	item, err := o.newItem(nil, title)
	if err != nil {
		return nil, err
	}
	o.items = append(o.items, item)
	return item, nil
}

// AddChild appends a new child item with the given title.
func (item *Item) AddChild(title string) (*Item, error) {
	child, err := item.outline.newItem(item, title)
	if err != nil {
		return nil, err
	}
	item.children = append(item.children, child)
	return child, nil
}

func (o *Outline) newItem(parent *Item, title string) (*Item, error) {
	item := &Item{
		Title:   title,
		outline: o,
		parent:  parent,
	}
	_, err := o.doc.RegisterTrailer(item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetDest makes the item display dest when activated.  Explicit
// destinations are shared.
func (item *Item) SetDest(dest destination.Destination) error {
	var d pdf.Object
	if dest.DestinationType() == destination.TypeNamed {
		var err error
		d, err = dest.Encode()
		if err != nil {
			return err
		}
	} else {
		ref, err := destination.Share(item.outline.doc, dest)
		if err != nil {
			return err
		}
		d = ref
	}
	item.target = pdf.Dict{"Dest": d}
	return nil
}

// SetAction makes the item perform a when activated.
func (item *Item) SetAction(a action.Action) error {
	ref, err := action.Share(item.outline.doc, a)
	if err != nil {
		return err
	}
	item.target = pdf.Dict{"A": ref}
	return nil
}

// SetColor sets the color of the item's text.  Components must be in the
// range 0.0 to 1.0.
func (item *Item) SetColor(r, g, b float64) error {
	for i, c := range []float64{r, g, b} {
		if c < 0 || c > 1 {
			return fmt.Errorf("outline item color component %d out of range: %g", i, c)
		}
	}
	err := item.outline.doc.RequireVersion("outline item color", pdf.V1_4)
	if err != nil {
		return err
	}
	item.color = pdf.Array{pdf.Number(r), pdf.Number(g), pdf.Number(b)}
	return nil
}

// SetStyle selects bold and italic text for the item.
func (item *Item) SetStyle(bold, italic bool) error {
	var flags int
	if italic {
		flags |= 1
	}
	if bold {
		flags |= 2
	}
	if flags != 0 {
		err := item.outline.doc.RequireVersion("outline item flags", pdf.V1_4)
		if err != nil {
			return err
		}
	}
	item.flags = flags
	return nil
}

// visible returns the number of descendants which are visible when the
// item is open.
func visible(items []*Item) int {
	n := 0
	for _, item := range items {
		n++
		if item.Open {
			n += visible(item.children)
		}
	}
	return n
}

// link sets the /First, /Last and /Count entries for a list of children.
func link(dict pdf.Dict, children []*Item, count int) {
	if len(children) == 0 {
		return
	}
	dict["First"] = children[0].Ref()
	dict["Last"] = children[len(children)-1].Ref()
	if count != 0 {
		dict["Count"] = pdf.Integer(count)
	}
}

// PDF implements the [pdf.Object] interface.
func (o *Outline) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"Type": pdf.Name("Outlines"),
	}
	link(dict, o.items, visible(o.items))
	return dict.PDF(w)
}

// PDF implements the [pdf.Object] interface.
func (item *Item) PDF(w io.Writer) error {
	siblings := item.outline.items
	parent := item.outline.Ref()
	if item.parent != nil {
		siblings = item.parent.children
		parent = item.parent.Ref()
	}

	dict := pdf.Dict{
		"Title":  pdf.TextString(item.Title),
		"Parent": parent,
	}
	for i, sib := range siblings {
		if sib != item {
			continue
		}
		if i > 0 {
			dict["Prev"] = siblings[i-1].Ref()
		}
		if i < len(siblings)-1 {
			dict["Next"] = siblings[i+1].Ref()
		}
		break
	}

	count := visible(item.children)
	if !item.Open {
		count = -count
	}
	link(dict, item.children, count)

	if item.color != nil {
		dict["C"] = item.color
	}
	if item.flags != 0 {
		dict["F"] = pdf.Integer(item.flags)
	}
	for key, val := range item.target {
		dict[key] = val
	}
	return dict.PDF(w)
}
