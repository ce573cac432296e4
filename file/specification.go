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

package file

import (
	"errors"
	"io"
	"slices"
	"strings"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// PDF 2.0 sections: 7.11.3 7.11.4

// Specification represents a file specification dictionary.
type Specification struct {
	pdf.ObjectBase

	// FileName specifies the file path in platform-independent format.
	// Components are separated by forward slashes.
	//
	// This corresponds to the /F entry in the PDF file specification
	// dictionary.
	FileName string

	// FileNameUnicode (optional, PDF 1.7) provides a Unicode version of the
	// file name.  If this is empty, FileName is used for the /UF entry when
	// the document version allows it.
	//
	// This corresponds to the /UF entry in the PDF dictionary.
	FileNameUnicode string

	// Description (optional) provides descriptive text for the file
	// specification.
	//
	// This corresponds to the /Desc entry in the PDF dictionary.
	Description string

	// AFRelationship (PDF 2.0) specifies the relationship between the
	// referencing component and the associated file.
	AFRelationship Relationship

	// Embedded (optional) holds the embedded file data.
	//
	// This corresponds to the /EF entry in the PDF dictionary.
	Embedded *EmbeddedFile

	unicode bool // write the /UF entry
}

// Relationship represents the relationship between a file specification
// and the PDF component which refers to it.
type Relationship pdf.Name

// These are the standard relationship types defined in PDF 2.0.
const (
	RelationshipSource      Relationship = "Source"
	RelationshipData        Relationship = "Data"
	RelationshipAlternative Relationship = "Alternative"
	RelationshipSupplement  Relationship = "Supplement"
	RelationshipUnspecified Relationship = "Unspecified"
)

// Category implements the [pdf.Shareable] interface.
func (spec *Specification) Category() pdf.Category {
	return pdf.CategoryFileSpec
}

// Equal implements the [pdf.Shareable] interface.  Two specifications are
// equal if they describe the same file and refer to the same embedded file
// stream.
func (spec *Specification) Equal(other pdf.Shareable) bool {
	o, ok := other.(*Specification)
	if !ok {
		return false
	}
	return spec.FileName == o.FileName &&
		spec.FileNameUnicode == o.FileNameUnicode &&
		spec.Description == o.Description &&
		spec.AFRelationship == o.AFRelationship &&
		spec.Embedded == o.Embedded
}

// PDF implements the [pdf.Object] interface.
func (spec *Specification) PDF(w io.Writer) error {
	return spec.dict().PDF(w)
}

func (spec *Specification) dict() pdf.Dict {
	dict := pdf.Dict{
		"Type": pdf.Name("Filespec"),
		"F":    pdf.String(spec.FileName),
	}
	uf := spec.FileNameUnicode
	if uf == "" {
		uf = spec.FileName
	}
	if spec.unicode {
		dict["UF"] = pdf.TextString(uf)
	}
	if spec.Description != "" {
		dict["Desc"] = pdf.TextString(spec.Description)
	}
	if spec.AFRelationship != "" && spec.AFRelationship != RelationshipUnspecified {
		dict["AFRelationship"] = pdf.Name(spec.AFRelationship)
	}
	if spec.Embedded != nil {
		ef := pdf.Dict{"F": spec.Embedded.Ref()}
		if spec.unicode {
			ef["UF"] = spec.Embedded.Ref()
		}
		dict["EF"] = ef
	}
	return dict
}

// Share writes the file specification to the document, together with the
// embedded file stream if any.  If an equal specification has been written
// before, its reference is returned instead.
func Share(doc *pdf.Document, spec *Specification) (pdf.Reference, error) {
	if spec.FileName == "" {
		return 0, errors.New("missing file name")
	}
	if spec.AFRelationship != "" {
		err := doc.RequireVersion("associated files", pdf.V2_0)
		if err != nil {
			return 0, err
		}
	}
	spec.unicode = doc.Version() >= pdf.V1_7

	if doc.Find(spec) != nil {
		return doc.Share(spec)
	}

	if spec.Embedded != nil {
		err := doc.Profile().VerifyEmbeddedFilesAllowed()
		if err != nil {
			return 0, err
		}
		err = doc.RequireVersion("embedded files", pdf.V1_3)
		if err != nil {
			return 0, err
		}
		if !spec.Embedded.HasNumber() {
			_, err = doc.Register(spec.Embedded)
			if err != nil {
				return 0, err
			}
		}
	}
	return doc.Share(spec)
}

// Attach shares the file specification and lists it in the /EmbeddedFiles
// name tree of the document catalog, under the given name.  The
// specification must carry an embedded file.
func Attach(doc *pdf.Document, name string, spec *Specification) (pdf.Reference, error) {
	if spec.Embedded == nil {
		return 0, errors.New("attachment without embedded file")
	}
	cat := doc.Catalog()
	tree, _ := cat.Names["EmbeddedFiles"].(pdf.Dict)
	names, _ := tree["Names"].(pdf.Array)

	// keys are kept in sorted order
	key := pdf.String(name)
	pos, found := slices.BinarySearchFunc(pairs(names), key, func(a, b pdf.String) int {
		return strings.Compare(string(a), string(b))
	})
	if found {
		return 0, errors.New("duplicate attachment name " + name)
	}

	ref, err := Share(doc, spec)
	if err != nil {
		return 0, err
	}

	if cat.Names == nil {
		cat.Names = pdf.Dict{}
	}
	if tree == nil {
		tree = pdf.Dict{}
		cat.Names["EmbeddedFiles"] = tree
	}
	names = slices.Insert(names, 2*pos, pdf.Object(key), pdf.Object(ref))
	tree["Names"] = names
	return ref, nil
}

// pairs returns the keys of a flat name tree array.
func pairs(names pdf.Array) []pdf.String {
	keys := make([]pdf.String, 0, len(names)/2)
	for i := 0; i+1 < len(names); i += 2 {
		key, _ := names[i].(pdf.String)
		keys = append(keys, key)
	}
	return keys
}
