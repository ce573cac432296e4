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
)

// PDF 2.0 sections: 12.6.4.8

// URI represents a URI action that resolves a uniform resource identifier.
type URI struct {
	// URI is the uniform resource identifier to resolve.  It must consist
	// of 7-bit ASCII characters.
	URI string

	// IsMap indicates whether the URI is a map area.
	IsMap bool
}

// ActionType returns "URI".
// This implements the [Action] interface.
func (a *URI) ActionType() Type { return TypeURI }

// Encode implements the [Action] interface.
func (a *URI) Encode(doc *pdf.Document) (pdf.Dict, error) {
	if a.URI == "" {
		return nil, errors.New("URI action must have a non-empty URI")
	}
	for i := 0; i < len(a.URI); i++ {
		if a.URI[i] >= 0x80 {
			return nil, errors.New("URI action: non-ASCII character in URI")
		}
	}

	dict := pdf.Dict{
		"URI": pdf.String(a.URI),
	}
	if a.IsMap {
		err := doc.RequireVersion("URI action IsMap entry", pdf.V1_2)
		if err != nil {
			return nil, err
		}
		dict["IsMap"] = pdf.Bool(true)
	}
	return dict, nil
}
