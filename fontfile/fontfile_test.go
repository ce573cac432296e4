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
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/internal/debug/memfile"
)

var length1Re = regexp.MustCompile(`/Length1 (\d+)( 0 R)?`)

func TestTrueType(t *testing.T) {
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	want, err := info.WriteTrueTypePDF(io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	for _, seekable := range []bool{false, true} {
		var w io.Writer
		var out func() []byte
		if seekable {
			f := memfile.New()
			w, out = f, func() []byte { return f.Data }
		} else {
			buf := &bytes.Buffer{}
			w, out = buf, buf.Bytes
		}
		doc, err := pdf.NewDocument(w, nil)
		if err != nil {
			t.Fatal(err)
		}

		F, err := NewSFNT("GoRegular", info)
		if err != nil {
			t.Fatal(err)
		}
		if F.Program.Kind != KindTrueType || F.Subtype != "TrueType" {
			t.Errorf("wrong font type %s/%s", F.Program.Kind, F.Subtype)
		}
		space, A := F.Widths[' '-firstChar], F.Widths['A'-firstChar]
		if space <= 0 || A <= space {
			t.Errorf("implausible widths: space %g, A %g", space, A)
		}

		ref, err := Share(doc, F)
		if err != nil {
			t.Fatal(err)
		}
		again, err := Share(doc, &Font{Key: "GoRegular"})
		if err != nil {
			t.Fatal(err)
		}
		if again != ref {
			t.Error("font with the same key written twice")
		}
		if name := doc.ResourceName(F); name != "F1" {
			t.Errorf("got resource name %q, want F1", name)
		}

		err = doc.Close()
		if err != nil {
			t.Fatal(err)
		}
		data := out()
		for _, s := range []string{
			"/FontFile2 " + pdf.Format(F.Program.Ref()),
			"/Encoding /WinAnsiEncoding",
			"/FirstChar 32",
			"/LastChar 255",
			"/Type /FontDescriptor",
		} {
			if !bytes.Contains(data, []byte(s)) {
				t.Errorf("seekable=%t: missing %q", seekable, s)
			}
		}

		m := length1Re.FindSubmatch(data)
		if m == nil {
			t.Fatalf("seekable=%t: missing /Length1", seekable)
		}
		got := string(m[1])
		if m[2] != nil {
			// the value is stored in a separate object
			obj := regexp.MustCompile(`\n` + got + ` 0 obj\n(\d+)\nendobj`).FindSubmatch(data)
			if obj == nil {
				t.Fatalf("seekable=%t: /Length1 object %s not found", seekable, got)
			}
			got = string(obj[1])
		}
		if got != strconv.FormatInt(want, 10) {
			t.Errorf("seekable=%t: /Length1 is %s, want %d", seekable, got, want)
		}
	}
}

func TestStandard(t *testing.T) {
	_, err := NewStandard("F", "Arial")
	if err == nil {
		t.Error("Arial accepted as standard font")
	}

	F, err := NewStandard("Helvetica", "Helvetica")
	if err != nil {
		t.Fatal(err)
	}
	if got := pdf.Format(F); got != "<<\n/BaseFont /Helvetica\n/Encoding /WinAnsiEncoding\n/Subtype /Type1\n/Type /Font\n>>" {
		t.Errorf("wrong font dictionary %q", got)
	}

	doc, err := pdf.NewDocument(&bytes.Buffer{}, &pdf.Options{Profile: pdf.ProfilePDFA2b})
	if err != nil {
		t.Fatal(err)
	}
	_, err = Share(doc, F)
	var cErr *pdf.ConformanceError
	if !errors.As(err, &cErr) {
		t.Errorf("got %v, want ConformanceError", err)
	}
}

func makeType1() *type1.Font {
	fm := matrix.Matrix{0.001, 0, 0, 0.001, 0, 0}
	encoding := make([]string, 256)
	for i := range encoding {
		encoding[i] = ".notdef"
	}
	encoding[' '] = "space"
	encoding['A'] = "A"

	return &type1.Font{
		FontInfo: &type1.FontInfo{
			FontName:   "TestFont",
			FullName:   "Test Font",
			FamilyName: "TestFont",
			Weight:     "Regular",
			Version:    "1.0",
			FontMatrix: fm,
		},
		Outlines: &type1.Outlines{
			Glyphs: map[string]*type1.Glyph{
				".notdef": {WidthX: 250},
				"space":   {WidthX: 250},
				"A":       {WidthX: 600},
			},
			Private: &type1.PrivateDict{
				BlueValues: []funit.Int16{-10, 0, 700, 710},
				BlueScale:  0.039625,
				BlueShift:  7,
				BlueFuzz:   1,
				StdHW:      20,
				StdVW:      80,
			},
			Encoding: encoding,
		},
	}
}

func TestType1(t *testing.T) {
	F, err := NewType1("T", makeType1())
	if err != nil {
		t.Fatal(err)
	}
	if a := F.Widths['A'-firstChar]; a != 600 {
		t.Errorf("got width %g for A, want 600", a)
	}

	f := memfile.New()
	doc, err := pdf.NewDocument(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Share(doc, F)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{
		"/FontFile " + pdf.Format(F.Program.Ref()),
		"/Length2 ",
		"/Length3 0",
		"/BaseFont /TestFont",
		"/StemV 80",
	} {
		if !bytes.Contains(f.Data, []byte(s)) {
			t.Errorf("missing %q", s)
		}
	}
	if bytes.Contains(f.Data, []byte("/WinAnsiEncoding")) {
		t.Error("Type 1 font should use its built-in encoding")
	}

	_, err = NewType1("U", &type1.Font{})
	if err == nil {
		t.Error("font without name accepted")
	}
}
