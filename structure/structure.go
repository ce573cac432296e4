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

// Package structure implements the structure tree of tagged PDF files.
//
// The structure tree root is a trailer object.  Structure elements are
// assigned object numbers when they are created and are written by
// [pdf.Document.WriteTrailer], packed into object streams when the
// document uses a cross-reference stream.  The parent tree, which maps
// marked content on pages and annotations back to their structure
// elements, is written as part of the root.
package structure

import (
	"errors"
	"io"
	"slices"

	"golang.org/x/text/language"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// PDF 2.0 sections: 14.7 14.8

// Tree is the root of the structure tree.
type Tree struct {
	pdf.ObjectBase
	doc *pdf.Document

	// RoleMap maps non-standard structure types to standard ones.
	RoleMap map[pdf.Name]pdf.Name

	kids []*Element

	parentTree map[int]pdf.Object
	pageKeys   map[*pdf.Page]int
	nextKey    int
}

// New creates the structure tree of a document and marks the document as
// tagged.  This requires the Accessibility option.
func New(doc *pdf.Document) (*Tree, error) {
	if !doc.Options().Accessibility {
		return nil, errors.New("structure tree requires the Accessibility option")
	}
	cat := doc.Catalog()
	if cat.StructTreeRoot != 0 {
		return nil, errors.New("document already has a structure tree")
	}
	err := doc.RequireVersion("structure tree", pdf.V1_3)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		doc:        doc,
		parentTree: make(map[int]pdf.Object),
		pageKeys:   make(map[*pdf.Page]int),
	}
	ref, err := doc.RegisterTrailer(t)
	if err != nil {
		return nil, err
	}
	cat.StructTreeRoot = ref
	cat.MarkInfo = pdf.Dict{"Marked": pdf.Bool(true)}
	return t, nil
}

// AddElement adds a new top-level structure element of the given type.
func (t *Tree) AddElement(tp pdf.Name) (*Element, error) {
	e, err := t.newElement(nil, tp)
	if err != nil {
		return nil, err
	}
	t.kids = append(t.kids, e)
	return e, nil
}

func (t *Tree) newElement(parent *Element, tp pdf.Name) (*Element, error) {
	if tp == "" {
		return nil, errors.New("missing structure type")
	}
	e := &Element{
		Type:   tp,
		tree:   t,
		parent: parent,
	}
	_, err := t.doc.AssignNumber(e)
	if err != nil {
		return nil, err
	}
	t.doc.RegisterStructElem(e)
	return e, nil
}

// pageKey returns the parent tree key of the page, assigning one if
// needed.
func (t *Tree) pageKey(page *pdf.Page) int {
	if key, ok := t.pageKeys[page]; ok {
		return key
	}
	key := t.nextKey
	t.nextKey++
	t.pageKeys[page] = key
	page.StructParents = key
	t.parentTree[key] = pdf.Array{}
	return key
}

// PDF implements the [pdf.Object] interface.
func (t *Tree) PDF(w io.Writer) error {
	kids := make(pdf.Array, len(t.kids))
	for i, e := range t.kids {
		kids[i] = e.Ref()
	}

	keys := make([]int, 0, len(t.parentTree))
	for key := range t.parentTree {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	nums := make(pdf.Array, 0, 2*len(keys))
	for _, key := range keys {
		nums = append(nums, pdf.Integer(key), t.parentTree[key])
	}

	dict := pdf.Dict{
		"Type": pdf.Name("StructTreeRoot"),
		"K":    kids,
	}
	if len(nums) > 0 {
		dict["ParentTree"] = pdf.Dict{"Nums": nums}
		dict["ParentTreeNextKey"] = pdf.Integer(t.nextKey)
	}
	if len(t.RoleMap) > 0 {
		roles := pdf.Dict{}
		for from, to := range t.RoleMap {
			roles[from] = to
		}
		dict["RoleMap"] = roles
	}
	return dict.PDF(w)
}

// Element is a structure element.
type Element struct {
	pdf.ObjectBase

	// Type is the structure type, like "P" or "H1".
	Type pdf.Name

	// Title (optional) is the title of the element.
	Title string

	// Lang (optional) is the natural language of the element's content.
	Lang language.Tag

	// Alt (optional) is an alternate description, for example of a
	// figure.
	Alt string

	// ActualText (optional, PDF 1.4) is the text which the element's
	// content represents.
	ActualText string

	tree   *Tree
	parent *Element
	page   *pdf.Page
	kids   pdf.Array
}

// AddChild adds a new child element of the given type.
func (e *Element) AddChild(tp pdf.Name) (*Element, error) {
	child, err := e.tree.newElement(e, tp)
	if err != nil {
		return nil, err
	}
	e.kids = append(e.kids, child.Ref())
	return child, nil
}

// AddMarkedContent adds a marked-content sequence on page to the element.
// The returned MCID must be used in the BDC operator which starts the
// sequence in the page's content stream.
func (e *Element) AddMarkedContent(page *pdf.Page) (int, error) {
	if !page.HasNumber() {
		return 0, &pdf.UnassignedReferenceError{What: "page"}
	}
	t := e.tree
	key := t.pageKey(page)
	arr := t.parentTree[key].(pdf.Array)
	mcid := len(arr)
	t.parentTree[key] = append(arr, e.Ref())

	if e.page == nil {
		e.page = page
	}
	if e.page == page {
		e.kids = append(e.kids, pdf.Integer(mcid))
	} else {
		e.kids = append(e.kids, pdf.Dict{
			"Type": pdf.Name("MCR"),
			"Pg":   page.Ref(),
			"MCID": pdf.Integer(mcid),
		})
	}
	return mcid, nil
}

// AddObject adds a reference to an annotation or XObject on page to the
// element.  The returned key must be stored in the /StructParent entry of
// the object.
func (e *Element) AddObject(page *pdf.Page, obj pdf.Reference) (int, error) {
	if obj == 0 {
		return 0, &pdf.UnassignedReferenceError{What: "structure content item"}
	}
	t := e.tree
	key := t.nextKey
	t.nextKey++
	t.parentTree[key] = e.Ref()

	objr := pdf.Dict{
		"Type": pdf.Name("OBJR"),
		"Obj":  obj,
	}
	if page != nil {
		objr["Pg"] = page.Ref()
	}
	e.kids = append(e.kids, objr)
	return key, nil
}

// PDF implements the [pdf.Object] interface.
func (e *Element) PDF(w io.Writer) error {
	parent := e.tree.Ref()
	if e.parent != nil {
		parent = e.parent.Ref()
	}
	dict := pdf.Dict{
		"Type": pdf.Name("StructElem"),
		"S":    e.Type,
		"P":    parent,
	}
	if e.page != nil {
		dict["Pg"] = e.page.Ref()
	}
	switch len(e.kids) {
	case 0:
	case 1:
		dict["K"] = e.kids[0]
	default:
		dict["K"] = e.kids
	}
	if e.Title != "" {
		dict["T"] = pdf.TextString(e.Title)
	}
	if e.Lang != language.Und {
		dict["Lang"] = pdf.TextString(e.Lang.String())
	}
	if e.Alt != "" {
		dict["Alt"] = pdf.TextString(e.Alt)
	}
	if e.ActualText != "" {
		dict["ActualText"] = pdf.TextString(e.ActualText)
	}
	return dict.PDF(w)
}
