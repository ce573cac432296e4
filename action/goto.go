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

package action

import (
	"errors"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/destination"
	"github.com/apache/xmlgraphics-fop-sub006/file"
)

// PDF 2.0 sections: 12.6.4.2

// GoTo jumps to a destination in the current document.
type GoTo struct {
	// Dest is the destination to jump to.  Explicit destinations are
	// shared and referenced indirectly.
	Dest destination.Destination
}

// ActionType returns "GoTo".
// This implements the [Action] interface.
func (a *GoTo) ActionType() Type { return TypeGoTo }

// Encode implements the [Action] interface.
func (a *GoTo) Encode(doc *pdf.Document) (pdf.Dict, error) {
	if a.Dest == nil {
		return nil, errors.New("GoTo action without destination")
	}

	var d pdf.Object
	if a.Dest.DestinationType() == destination.TypeNamed {
		err := doc.RequireVersion("named destinations", pdf.V1_2)
		if err != nil {
			return nil, err
		}
		d, err = a.Dest.Encode()
		if err != nil {
			return nil, err
		}
	} else {
		ref, err := destination.Share(doc, a.Dest)
		if err != nil {
			return nil, err
		}
		d = ref
	}
	return pdf.Dict{"D": d}, nil
}

// PDF 2.0 sections: 12.6.4.3

// GoToR jumps to a destination in another PDF file.
type GoToR struct {
	// File is the target document.
	File *file.Specification

	// DestName, if set, names a destination in the target document.
	// Otherwise the action jumps to page PageIndex, shown in full.
	DestName string

	// PageIndex is the zero-based page number in the target document.
	PageIndex int

	// NewWindow specifies how the target document should be displayed.
	NewWindow NewWindowMode
}

// ActionType returns "GoToR".
// This implements the [Action] interface.
func (a *GoToR) ActionType() Type { return TypeGoToR }

// Encode implements the [Action] interface.
func (a *GoToR) Encode(doc *pdf.Document) (pdf.Dict, error) {
	if a.File == nil {
		return nil, errors.New("GoToR action without file")
	}
	if a.PageIndex < 0 {
		return nil, errors.New("GoToR action: negative page index")
	}
	ref, err := file.Share(doc, a.File)
	if err != nil {
		return nil, err
	}

	dict := pdf.Dict{"F": ref}
	if a.DestName != "" {
		dict["D"] = pdf.String(a.DestName)
	} else {
		// pages in other documents are given by number
		dict["D"] = pdf.Array{pdf.Integer(a.PageIndex), pdf.Name(destination.TypeFit)}
	}
	if a.NewWindow != NewWindowDefault {
		err = doc.RequireVersion("GoToR NewWindow entry", pdf.V1_2)
		if err != nil {
			return nil, err
		}
		a.NewWindow.set(dict)
	}
	return dict, nil
}
