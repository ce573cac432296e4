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


package destination

import (
	"errors"
	"io"
	"math"

	"seehuhn.de/go/geom/rect"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Destination represents a PDF destination.
//
// PDF 2.0 section: 12.3.2
type Destination interface {
	DestinationType() Type
	Encode() (pdf.Object, error)
}

// Type identifies the type of destination.
type Type pdf.Name

// These are the destination types.
const (
	TypeXYZ   Type = "XYZ"
	TypeFit   Type = "Fit"
	TypeFitH  Type = "FitH"
	TypeFitV  Type = "FitV"
	TypeFitR  Type = "FitR"
	TypeFitB  Type = "FitB"
	TypeFitBH Type = "FitBH"
	TypeFitBV Type = "FitBV"
	TypeNamed Type = "Named"
)

// Unset is a sentinel value for coordinates that should retain their current
// value.  Use math.IsNaN() to test for this value.
var Unset = math.NaN()

// XYZ displays the page with coordinates (Left, Top) positioned at the
// upper-left corner of the window and contents magnified by Zoom.
// A Zoom of 0 has the same meaning as Unset.
type XYZ struct {
	Page            pdf.Reference
	Left, Top, Zoom float64
}

func (d *XYZ) DestinationType() Type { return TypeXYZ }

func (d *XYZ) Encode() (pdf.Object, error) {
	return encode(d.Page, TypeXYZ, d.Left, d.Top, d.Zoom)
}

// Fit displays the whole page.
type Fit struct {
	Page pdf.Reference
}

func (d *Fit) DestinationType() Type { return TypeFit }

func (d *Fit) Encode() (pdf.Object, error) {
	return encode(d.Page, TypeFit)
}

// FitH fits the width of the page into the window, with Top at the top
// edge of the window.
type FitH struct {
	Page pdf.Reference
	Top  float64
}

func (d *FitH) DestinationType() Type { return TypeFitH }

func (d *FitH) Encode() (pdf.Object, error) {
	return encode(d.Page, TypeFitH, d.Top)
}

// FitV fits the height of the page into the window, with Left at the left
// edge of the window.
type FitV struct {
	Page pdf.Reference
	Left float64
}

func (d *FitV) DestinationType() Type { return TypeFitV }

func (d *FitV) Encode() (pdf.Object, error) {
	return encode(d.Page, TypeFitV, d.Left)
}

// FitR fits the given rectangle into the window.
type FitR struct {
	Page pdf.Reference
	Rect rect.Rect
}

func (d *FitR) DestinationType() Type { return TypeFitR }

func (d *FitR) Encode() (pdf.Object, error) {
	if d.Rect.IsZero() {
		return nil, errors.New("FitR destination: empty rectangle")
	}
	r := d.Rect
	return encode(d.Page, TypeFitR, r.LLx, r.LLy, r.URx, r.URy)
}

// FitB displays the bounding box of the page contents.
type FitB struct {
	Page pdf.Reference
}

func (d *FitB) DestinationType() Type { return TypeFitB }

func (d *FitB) Encode() (pdf.Object, error) {
	return encode(d.Page, TypeFitB)
}

// FitBH fits the width of the bounding box into the window.
type FitBH struct {
	Page pdf.Reference
	Top  float64
}

func (d *FitBH) DestinationType() Type { return TypeFitBH }

func (d *FitBH) Encode() (pdf.Object, error) {
	return encode(d.Page, TypeFitBH, d.Top)
}

// FitBV fits the height of the bounding box into the window.
type FitBV struct {
	Page pdf.Reference
	Left float64
}

func (d *FitBV) DestinationType() Type { return TypeFitBV }

func (d *FitBV) Encode() (pdf.Object, error) {
	return encode(d.Page, TypeFitBV, d.Left)
}

// Named refers to a destination registered with [AddNamed].
type Named struct {
	Name string
}

func (d *Named) DestinationType() Type { return TypeNamed }

func (d *Named) Encode() (pdf.Object, error) {
	if d.Name == "" {
		return nil, errors.New("named destination: empty name")
	}
	return pdf.String(d.Name), nil
}

func encode(page pdf.Reference, tp Type, args ...float64) (pdf.Object, error) {
	if page == 0 {
		return nil, &pdf.UnassignedReferenceError{What: "destination page"}
	}
	res := pdf.Array{page, pdf.Name(tp)}
	for _, x := range args {
		if math.IsInf(x, 0) {
			return nil, errors.New(string(tp) + " destination: coordinates must be finite or Unset")
		}
		res = append(res, optionalNumber(x))
	}
	return res, nil
}

// optionalNumber converts a float64 to a PDF object, using null for Unset.
func optionalNumber(v float64) pdf.Object {
	if math.IsNaN(v) {
		return nil
	}
	return pdf.Number(v)
}

// Object is an explicit destination written as an indirect object.
type Object struct {
	pdf.ObjectBase
	encoded pdf.Object
}

// Category implements the [pdf.Shareable] interface.
func (d *Object) Category() pdf.Category {
	return pdf.CategoryDestination
}

// Equal implements the [pdf.Shareable] interface.
func (d *Object) Equal(other pdf.Shareable) bool {
	o, ok := other.(*Object)
	return ok && pdf.Format(d.encoded) == pdf.Format(o.encoded)
}

// PDF implements the [pdf.Object] interface.
func (d *Object) PDF(w io.Writer) error {
	return d.encoded.PDF(w)
}

// Share writes the explicit destination dest as an indirect object.  If an
// equal destination has been written before, its reference is returned.
func Share(doc *pdf.Document, dest Destination) (pdf.Reference, error) {
	if dest.DestinationType() == TypeNamed {
		return 0, errors.New("named destinations cannot be shared")
	}
	enc, err := dest.Encode()
	if err != nil {
		return 0, err
	}
	return doc.Share(&Object{encoded: enc})
}

// AddNamed registers dest under the given name.  The named destinations of
// a document are written as a name tree when the trailer is written.
func AddNamed(doc *pdf.Document, name string, dest Destination) error {
	if dest.DestinationType() == TypeNamed {
		return errors.New("named destination cannot refer to another name")
	}
	enc, err := dest.Encode()
	if err != nil {
		return err
	}
	return doc.AddDestination(name, enc)
}
