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

// Package metadata implements XMP metadata streams.
//
// The document metadata stream is referenced from the /Metadata entry of
// the document catalog.  PDF/A and PDF/UA documents must carry one, and
// the stream must identify the conformance level of the file.
// [ForDocument] builds such a packet from the document information
// dictionary and the active profile.
package metadata

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// PDF 2.0 sections: 14.3

// Stream represents an XMP metadata stream.
//
// The metadata may either refer to a PDF document as a whole, or to
// individual objects within the document.
type Stream struct {
	pdf.ObjectBase
	pdf.StreamData

	Data *xmp.Packet
}

// New returns a metadata stream for the given packet.
func New(packet *xmp.Packet) *Stream {
	s := &Stream{Data: packet}
	s.StreamData.Type = pdf.StreamMetadata
	return s
}

// PDF implements the [pdf.Object] interface.
func (s *Stream) PDF(w io.Writer) error {
	s.StreamData.Dict = pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}
	s.StreamData.Produce = func(w io.Writer) error {
		return s.Data.Write(w, &xmp.PacketOptions{Pretty: true})
	}
	return s.StreamData.PDF(w)
}

// Embed adds the XMP metadata stream to the document.
func Embed(doc *pdf.Document, s *Stream) (pdf.Reference, error) {
	err := doc.RequireVersion("XMP metadata stream", pdf.V1_4)
	if err != nil {
		return 0, err
	}
	if s.HasNumber() {
		return s.Ref(), nil
	}
	return doc.Register(s)
}

// SetDocument embeds packet as the document metadata stream.  If packet is
// nil, the packet returned by [ForDocument] is used.
func SetDocument(doc *pdf.Document, packet *xmp.Packet) (pdf.Reference, error) {
	if packet == nil {
		var err error
		packet, err = ForDocument(doc)
		if err != nil {
			return 0, err
		}
	}
	ref, err := Embed(doc, New(packet))
	if err != nil {
		return 0, err
	}
	doc.Catalog().Metadata = ref
	return ref, nil
}

// ForDocument returns an XMP packet mirroring the document information
// dictionary.  For PDF/A and PDF/UA documents the packet includes the
// identification schema of the profile.
func ForDocument(doc *pdf.Document) (*xmp.Packet, error) {
	info := doc.Info()

	dc := &xmp.DublinCore{}
	if info.Title != "" {
		dc.Title.Set(language.Und, info.Title)
	}
	if info.Subject != "" {
		dc.Description.Set(language.Und, info.Subject)
	}
	for _, author := range strings.Split(info.Author, ";") {
		author = strings.TrimSpace(author)
		if author != "" {
			dc.Creator.Append(xmp.NewProperName(author))
		}
	}

	basic := &Basic{}
	if !info.CreationDate.IsZero() {
		basic.CreateDate = xmp.NewDate(info.CreationDate)
	}
	if !info.ModDate.IsZero() {
		basic.ModifyDate = xmp.NewDate(info.ModDate)
	}
	if info.Creator != "" {
		basic.CreatorTool = xmp.NewAgentName(info.Creator)
	}

	pdfInfo := &PDF{}
	if info.Keywords != "" {
		pdfInfo.Keywords = xmp.NewText(info.Keywords)
	}
	if info.Producer != "" {
		pdfInfo.Producer = xmp.NewAgentName(info.Producer)
	}
	if v, err := doc.Version().ToString(); err == nil {
		pdfInfo.PDFVersion = xmp.NewText(v)
	}

	packet := xmp.NewPacket()
	err := packet.Set(dc, basic, pdfInfo)
	if err != nil {
		return nil, err
	}

	switch doc.Profile() {
	case pdf.ProfilePDFA1b:
		err = packet.Set(&PDFAIdentification{
			Part:        xmp.NewText("1"),
			Conformance: xmp.NewText("B"),
		})
	case pdf.ProfilePDFA2b:
		err = packet.Set(&PDFAIdentification{
			Part:        xmp.NewText("2"),
			Conformance: xmp.NewText("B"),
		})
	case pdf.ProfilePDFUA1:
		err = packet.Set(&PDFUAIdentification{
			Part: xmp.NewText("1"),
		})
	}
	if err != nil {
		return nil, err
	}
	return packet, nil
}
