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

// Package action implements PDF actions.
//
// Actions are written as indirect objects and shared through the document,
// so that links to the same target use a single action dictionary.
package action

import (
	"io"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// PDF 2.0 sections: 12.6.1 12.6.4

// Type is the type of an action, as given by the /S entry of the action
// dictionary.
type Type pdf.Name

// These are the supported action types.
const (
	TypeGoTo   Type = "GoTo"
	TypeGoToR  Type = "GoToR"
	TypeLaunch Type = "Launch"
	TypeURI    Type = "URI"
)

// Action represents a PDF action.
type Action interface {
	ActionType() Type

	// Encode returns the action dictionary.  Objects the action refers to,
	// like destinations and file specifications, are shared through doc.
	Encode(doc *pdf.Document) (pdf.Dict, error)
}

// NewWindowMode specifies how a target document should be displayed.
type NewWindowMode uint8

const (
	// NewWindowDefault indicates the viewer should use its preference.
	NewWindowDefault NewWindowMode = iota
	// NewWindowReplace indicates the target should replace the current window.
	NewWindowReplace
	// NewWindowNew indicates the target should open in a new window.
	NewWindowNew
)

func (m NewWindowMode) set(dict pdf.Dict) {
	switch m {
	case NewWindowReplace:
		dict["NewWindow"] = pdf.Bool(false)
	case NewWindowNew:
		dict["NewWindow"] = pdf.Bool(true)
	}
}

// Object is an action dictionary written as an indirect object.
type Object struct {
	pdf.ObjectBase
	tp   Type
	dict pdf.Dict
}

// Category implements the [pdf.Shareable] interface.
func (a *Object) Category() pdf.Category {
	switch a.tp {
	case TypeGoTo:
		return pdf.CategoryGoTo
	case TypeGoToR:
		return pdf.CategoryGoToRemote
	case TypeLaunch:
		return pdf.CategoryLaunch
	default:
		return pdf.CategoryURI
	}
}

// Equal implements the [pdf.Shareable] interface.
func (a *Object) Equal(other pdf.Shareable) bool {
	o, ok := other.(*Object)
	return ok && a.tp == o.tp && pdf.Format(a.dict) == pdf.Format(o.dict)
}

// PDF implements the [pdf.Object] interface.
func (a *Object) PDF(w io.Writer) error {
	return a.dict.PDF(w)
}

// Share writes the action as an indirect object.  If an equal action has
// been written before, its reference is returned instead.
func Share(doc *pdf.Document, a Action) (pdf.Reference, error) {
	tp := a.ActionType()
	err := doc.Profile().VerifyActionAllowed(pdf.Name(tp))
	if err != nil {
		return 0, err
	}
	err = doc.RequireVersion(string(tp)+" action", pdf.V1_1)
	if err != nil {
		return 0, err
	}

	dict, err := a.Encode(doc)
	if err != nil {
		return 0, err
	}
	dict["Type"] = pdf.Name("Action")
	dict["S"] = pdf.Name(tp)
	return doc.Share(&Object{tp: tp, dict: dict})
}
