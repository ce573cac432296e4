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

package annotation

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/action"
	"github.com/apache/xmlgraphics-fop-sub006/destination"
)

var a4 = rect.Rect{URx: 595, URy: 842}

func TestAdd(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := pdf.NewDocument(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	page, err := doc.NewPage(a4)
	if err != nil {
		t.Fatal(err)
	}

	area := rect.Rect{LLx: 72, LLy: 700, URx: 200, URy: 712}
	l1 := NewLink(area, &action.URI{URI: "https://example.com/"})
	l2 := NewLink(area, &action.URI{URI: "https://example.com/"})
	ref1, err := Add(doc, page, l1)
	if err != nil {
		t.Fatal(err)
	}
	ref2, err := Add(doc, page, l2)
	if err != nil {
		t.Fatal(err)
	}
	if ref1 != ref2 {
		t.Errorf("identical links written twice: %s, %s", ref1, ref2)
	}

	l3 := &Link{
		Rect:         area,
		Dest:         &destination.Fit{Page: page.Ref()},
		Highlight:    HighlightOutline,
		StructParent: 0,
	}
	ref3, err := Add(doc, page, l3)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(page.Annots, []pdf.Reference{ref1, ref3}); d != "" {
		t.Errorf("wrong /Annots (-got +want):\n%s", d)
	}

	err = doc.Add(page)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"/Subtype /Link",
		"/Rect [72 700 200 712]",
		"/Border [0 0 0]",
		"/H /O",
		"/StructParent 0",
		"/Dest [" + pdf.Format(page.Ref()) + " /Fit]",
	} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("missing %q", want)
		}
	}
	if doc.Version() < pdf.V1_3 {
		t.Errorf("version %s too low for StructParent", doc.Version())
	}
}

func TestInvalidLinks(t *testing.T) {
	doc, err := pdf.NewDocument(&bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	area := rect.Rect{URx: 10, URy: 10}
	bad := []*Link{
		NewLink(rect.Rect{}, &action.URI{URI: "x"}),
		{Rect: area, Action: &action.URI{URI: "x"}, Dest: &destination.Named{Name: "x"}, StructParent: -1},
		{Rect: area, Border: &Border{Width: -1}, StructParent: -1},
		{Rect: area, Border: &Border{Width: 1, DashArray: []float64{0, 0}}, StructParent: -1},
	}
	for i, l := range bad {
		_, err := Add(doc, nil, l)
		if err == nil {
			t.Errorf("%d: invalid link accepted", i)
		}
	}
}

func TestBorder(t *testing.T) {
	cases := []struct {
		b    *Border
		want string
	}{
		{nil, "[0 0 0]"},
		{&Border{Width: 1}, "[0 0 1]"},
		{&Border{HCornerRadius: 2, VCornerRadius: 2, Width: 0.5, DashArray: []float64{3, 2}}, "[2 2 0.5 [3 2]]"},
	}
	for _, tc := range cases {
		arr, err := tc.b.encode()
		if err != nil {
			t.Fatal(err)
		}
		if got := pdf.Format(arr); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestProfiles(t *testing.T) {
	area := rect.Rect{URx: 10, URy: 10}

	doc, err := pdf.NewDocument(&bytes.Buffer{}, &pdf.Options{Profile: pdf.ProfilePDFX3})
	if err != nil {
		t.Fatal(err)
	}
	_, err = Add(doc, nil, &Link{Rect: area, StructParent: -1})
	var cErr *pdf.ConformanceError
	if !errors.As(err, &cErr) {
		t.Errorf("got %v, want ConformanceError", err)
	}

	doc, err = pdf.NewDocument(&bytes.Buffer{}, &pdf.Options{Profile: pdf.ProfilePDFA1b})
	if err != nil {
		t.Fatal(err)
	}
	l := &Link{Rect: area, Flags: FlagHidden, StructParent: -1}
	_, err = Add(doc, nil, l)
	if err != nil {
		t.Fatal(err)
	}
	if l.dict["F"] != pdf.Integer(FlagPrint) {
		t.Errorf("wrong flags %v", l.dict["F"])
	}
}
