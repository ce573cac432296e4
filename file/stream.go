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
	"crypto/md5"
	"io"
	"time"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// PDF 2.0 sections: 7.11.4

// EmbeddedFile represents an embedded file stream.
type EmbeddedFile struct {
	pdf.ObjectBase
	pdf.StreamData

	// MimeType (optional) specifies the MIME media type of the embedded file.
	//
	// This corresponds to the /Subtype entry in the PDF dictionary.
	MimeType string

	// CreationDate (optional) specifies when the embedded file was created.
	CreationDate time.Time

	// ModDate (optional) specifies when the embedded file was last modified.
	ModDate time.Time

	data []byte
}

// NewEmbeddedFile returns a new embedded file stream with the given
// contents.  The /Size and /CheckSum parameters are derived from data.
func NewEmbeddedFile(data []byte, mimeType string) *EmbeddedFile {
	f := &EmbeddedFile{
		MimeType: mimeType,
		data:     data,
	}
	f.StreamData.Type = pdf.StreamDefault
	return f
}

// Size returns the uncompressed size of the file, in bytes.
func (f *EmbeddedFile) Size() int {
	return len(f.data)
}

// PDF implements the [pdf.Object] interface.
func (f *EmbeddedFile) PDF(w io.Writer) error {
	sum := md5.Sum(f.data)
	params := pdf.Dict{
		"Size":     pdf.Integer(len(f.data)),
		"CheckSum": pdf.String(sum[:]),
	}
	if !f.CreationDate.IsZero() {
		params["CreationDate"] = pdf.Date(f.CreationDate)
	}
	if !f.ModDate.IsZero() {
		params["ModDate"] = pdf.Date(f.ModDate)
	}

	dict := pdf.Dict{
		"Type":   pdf.Name("EmbeddedFile"),
		"Params": params,
	}
	if f.MimeType != "" {
		dict["Subtype"] = pdf.Name(f.MimeType)
	}
	f.StreamData.Dict = dict
	f.StreamData.SetData(f.data)
	return f.StreamData.PDF(w)
}
