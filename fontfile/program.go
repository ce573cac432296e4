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

package fontfile

import (
	"errors"
	"fmt"
	"io"

	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// PDF 2.0 sections: 9.9

// Kind is the format of an embedded font program.
type Kind int

// These are the supported font program formats.
const (
	KindTrueType Kind = iota + 1
	KindOpenType
	KindType1
)

func (k Kind) String() string {
	switch k {
	case KindTrueType:
		return "TrueType"
	case KindOpenType:
		return "OpenType"
	case KindType1:
		return "Type 1"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// descriptorKey is the font descriptor entry which refers to the program.
func (k Kind) descriptorKey() pdf.Name {
	switch k {
	case KindTrueType:
		return "FontFile2"
	case KindOpenType:
		return "FontFile3"
	default:
		return "FontFile"
	}
}

// Program is an embedded font program.
type Program struct {
	pdf.ObjectBase
	pdf.StreamData

	Kind Kind

	sfnt  *sfnt.Font
	type1 *type1.Font
	doc   *pdf.Document
}

var errNoDocument = errors.New("font program is not attached to a document")

// PDF implements the [pdf.Object] interface.
func (p *Program) PDF(w io.Writer) error {
	if p.doc == nil {
		return errNoDocument
	}

	dict := pdf.Dict{}
	switch p.Kind {
	case KindTrueType:
		length1 := pdf.NewPlaceholder(p.doc, 10)
		dict["Length1"] = length1
		p.Produce = func(w io.Writer) error {
			n, err := p.sfnt.WriteTrueTypePDF(w)
			if err != nil {
				return fmt.Errorf("write TrueType stream: %w", err)
			}
			return length1.Set(pdf.Integer(n))
		}
	case KindOpenType:
		dict["Subtype"] = pdf.Name("OpenType")
		p.Produce = func(w io.Writer) error {
			err := p.sfnt.WriteOpenTypeCFFPDF(w)
			if err != nil {
				return fmt.Errorf("write OpenType/CFF stream: %w", err)
			}
			return nil
		}
	case KindType1:
		length1 := pdf.NewPlaceholder(p.doc, 10)
		length2 := pdf.NewPlaceholder(p.doc, 10)
		dict["Length1"] = length1
		dict["Length2"] = length2
		dict["Length3"] = pdf.Integer(0)
		p.Produce = func(w io.Writer) error {
			l1, l2, err := p.type1.WritePDF(w)
			if err != nil {
				return fmt.Errorf("write Type1 stream: %w", err)
			}
			err = length1.Set(pdf.Integer(l1))
			if err != nil {
				return err
			}
			return length2.Set(pdf.Integer(l2))
		}
	default:
		return fmt.Errorf("unknown font program kind %d", p.Kind)
	}

	p.StreamData.Type = pdf.StreamFont
	p.StreamData.Dict = dict
	return p.StreamData.PDF(w)
}
