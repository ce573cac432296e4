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

package metadata

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
	"seehuhn.de/go/xmp"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/color"
)

// readPacket extracts and parses the metadata stream from a PDF file.
func readPacket(t *testing.T, data []byte) *xmp.Packet {
	t.Helper()
	pos := bytes.Index(data, []byte("/Subtype /XML"))
	if pos < 0 {
		t.Fatal("metadata stream not found")
	}
	data = data[pos:]
	start := bytes.Index(data, []byte("stream\n"))
	end := bytes.Index(data, []byte("\nendstream"))
	if start < 0 || end < start {
		t.Fatal("malformed metadata stream")
	}
	packet, err := xmp.Read(bytes.NewReader(data[start+7 : end]))
	if err != nil {
		t.Fatal(err)
	}
	return packet
}

func TestRoundTrip(t *testing.T) {
	packet := xmp.NewPacket()
	dc := &xmp.DublinCore{}
	dc.Title.Set(language.Und, "Test Document")
	dc.Creator.Append(xmp.NewProperName("Test Author"))
	err := packet.Set(dc)
	if err != nil {
		t.Fatalf("failed to set properties: %v", err)
	}

	buf := &bytes.Buffer{}
	doc, err := pdf.NewDocument(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := SetDocument(doc, packet)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Catalog().Metadata != ref {
		t.Error("catalog does not refer to the metadata stream")
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	var extracted xmp.DublinCore
	readPacket(t, buf.Bytes()).Get(&extracted)
	if d := cmp.Diff(extracted, *dc); d != "" {
		t.Errorf("round trip failed (-got +want):\n%s", d)
	}
}

func TestPDFA(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := pdf.NewDocument(buf, &pdf.Options{
		Profile:      pdf.ProfilePDFA1b,
		Producer:     "pdfgen",
		CreationDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	doc.Info().Title = "Annual Report"
	doc.Info().Author = "A. Writer; B. Editor"

	_, err = color.AddSRGBOutputIntent(doc)
	if err != nil {
		t.Fatal(err)
	}
	_, err = SetDocument(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	packet := readPacket(t, buf.Bytes())
	var id PDFAIdentification
	packet.Get(&id)
	want := PDFAIdentification{
		Part:        xmp.NewText("1"),
		Conformance: xmp.NewText("B"),
	}
	if d := cmp.Diff(id, want); d != "" {
		t.Errorf("wrong identification (-got +want):\n%s", d)
	}

	var dc xmp.DublinCore
	packet.Get(&dc)
	wantDC := xmp.DublinCore{}
	wantDC.Title.Set(language.Und, "Annual Report")
	wantDC.Creator.Append(xmp.NewProperName("A. Writer"))
	wantDC.Creator.Append(xmp.NewProperName("B. Editor"))
	if d := cmp.Diff(dc, wantDC); d != "" {
		t.Errorf("wrong Dublin Core (-got +want):\n%s", d)
	}
}

func TestVersion(t *testing.T) {
	doc, err := pdf.NewDocument(&bytes.Buffer{}, &pdf.Options{
		Version:      pdf.V1_3,
		FixedVersion: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = SetDocument(doc, nil)
	var vErr *pdf.VersionError
	if !errors.As(err, &vErr) {
		t.Errorf("got %v, want VersionError", err)
	}
	if doc.Catalog().Metadata != 0 {
		t.Error("metadata set despite error")
	}
}
