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
	"io"
	"strconv"
)

// Indirect is implemented by objects which are written as indirect objects,
// i.e. as separate "n g obj ... endobj" units in the file body.  Types
// implement this interface by embedding [ObjectBase].
type Indirect interface {
	Object
	base() *ObjectBase
}

// ObjectBase holds the identity of an indirect object: its object number
// and generation, and the document it belongs to.  The zero value describes
// an object which is not yet attached to any document.
type ObjectBase struct {
	ref   Reference
	owner uint64 // serial number of the owning document, 0 if unattached
}

func (b *ObjectBase) base() *ObjectBase {
	return b
}

// Ref returns the reference to the object.  This is 0 if no number has been
// assigned yet.
func (b *ObjectBase) Ref() Reference {
	return b.ref
}

// HasNumber reports whether an object number has been assigned.
func (b *ObjectBase) HasNumber() bool {
	return b.ref != 0
}

// Category identifies a group of objects which are deduplicated by the
// document.
type Category int

// These are the object categories known to the document.
const (
	CategoryFunction Category = iota + 1
	CategoryShading
	CategoryPattern
	CategoryFont
	CategoryGState
	CategoryLink
	CategoryDestination
	CategoryFileSpec
	CategoryGoTo
	CategoryGoToRemote
	CategoryLaunch
	CategoryURI
)

func (c Category) String() string {
	switch c {
	case CategoryFunction:
		return "function"
	case CategoryShading:
		return "shading"
	case CategoryPattern:
		return "pattern"
	case CategoryFont:
		return "font"
	case CategoryGState:
		return "graphics state"
	case CategoryLink:
		return "link"
	case CategoryDestination:
		return "destination"
	case CategoryFileSpec:
		return "file specification"
	case CategoryGoTo:
		return "goto"
	case CategoryGoToRemote:
		return "goto-remote"
	case CategoryLaunch:
		return "launch"
	case CategoryURI:
		return "uri"
	default:
		return "category-" + strconv.Itoa(int(c))
	}
}

// resourcePrefix gives the prefix for generated resource names, or the
// empty string for categories which are not resources.
func (c Category) resourcePrefix() string {
	switch c {
	case CategoryShading:
		return "Sh"
	case CategoryPattern:
		return "Pa"
	case CategoryGState:
		return "GS"
	case CategoryFont:
		return "F"
	default:
		return ""
	}
}

// Shareable is implemented by indirect objects which the document
// deduplicates.  Equal must compare the content of the objects, not their
// identity.
type Shareable interface {
	Indirect
	Category() Category
	Equal(other Shareable) bool
}

// ObjectStreamer can be implemented by indirect objects to control whether
// they may be stored in an object stream.  Objects which do not implement
// this interface may be stored in object streams, unless they are streams.
type ObjectStreamer interface {
	InObjectStream() bool
}

// DictObject is a dictionary written as an indirect object.
type DictObject struct {
	ObjectBase
	Dict
}

// NewDictObject returns a new, unattached indirect dictionary.
func NewDictObject(dict Dict) *DictObject {
	return &DictObject{Dict: dict}
}

// PDF implements the [Object] interface.
func (d *DictObject) PDF(w io.Writer) error {
	return d.Dict.PDF(w)
}

// ArrayObject is an array written as an indirect object.
type ArrayObject struct {
	ObjectBase
	Array
}

// PDF implements the [Object] interface.
func (a *ArrayObject) PDF(w io.Writer) error {
	return a.Array.PDF(w)
}

// numberObject is an indirect number whose value is set after its
// reference has been written, e.g. the length of a stream.
type numberObject struct {
	ObjectBase
	val Object
}

func (n *numberObject) PDF(w io.Writer) error {
	if n.val == nil {
		return &UnassignedReferenceError{What: "value of " + n.ref.String()}
	}
	return n.val.PDF(w)
}
