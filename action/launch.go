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
	"github.com/apache/xmlgraphics-fop-sub006/file"
)

// PDF 2.0 sections: 12.6.4.6

// Launch launches an application or opens a document.
type Launch struct {
	// File is the application to launch or the document to open.
	File *file.Specification

	// NewWindow specifies whether a PDF target document is opened in a
	// new window.
	NewWindow NewWindowMode
}

// ActionType returns "Launch".
// This implements the [Action] interface.
func (a *Launch) ActionType() Type { return TypeLaunch }

// Encode implements the [Action] interface.
func (a *Launch) Encode(doc *pdf.Document) (pdf.Dict, error) {
	if a.File == nil {
		return nil, errors.New("Launch action without file")
	}
	ref, err := file.Share(doc, a.File)
	if err != nil {
		return nil, err
	}
	dict := pdf.Dict{"F": ref}
	a.NewWindow.set(dict)
	return dict, nil
}
