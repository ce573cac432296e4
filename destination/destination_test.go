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


package destination

import (
	"bytes"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

var page = pdf.NewReference(10, 0)

func TestEncode(t *testing.T) {
	cases := []struct {
		dest Destination
		out  string
	}{
		{&XYZ{Page: page, Left: 100, Top: 200, Zoom: 1.5}, "[10 0 R /XYZ 100 200 1.5]"},
		{&XYZ{Page: page, Left: Unset, Top: Unset, Zoom: Unset}, "[10 0 R /XYZ null null null]"},
		{&Fit{Page: page}, "[10 0 R /Fit]"},
		{&FitH{Page: page, Top: 500}, "[10 0 R /FitH 500]"},
		{&FitV{Page: page, Left: Unset}, "[10 0 R /FitV null]"},
		{&FitR{Page: page, Rect: rect.Rect{LLx: 100, LLy: 200, URx: 400, URy: 500}}, "[10 0 R /FitR 100 200 400 500]"},
		{&FitB{Page: page}, "[10 0 R /FitB]"},
		{&FitBH{Page: page, Top: 600}, "[10 0 R /FitBH 600]"},
		{&FitBV{Page: page, Left: 50}, "[10 0 R /FitBV 50]"},
		{&Named{Name: "Chapter6"}, "(Chapter6)"},
	}
	for _, tc := range cases {
		obj, err := tc.dest.Encode()
		if err != nil {
			t.Errorf("%s: %v", tc.dest.DestinationType(), err)
			continue
		}
		if got := pdf.Format(obj); got != tc.out {
			t.Errorf("%s: got %q, want %q", tc.dest.DestinationType(), got, tc.out)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	cases := []Destination{
		&Fit{},
		&XYZ{Page: page, Left: math.Inf(1)},
		&FitR{Page: page},
		&Named{},
	}
	for _, dest := range cases {
		if _, err := dest.Encode(); err == nil {
			t.Errorf("%s: invalid destination accepted", dest.DestinationType())
		}
	}
}

func TestShare(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := pdf.NewDocument(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	p, err := doc.NewPage(rect.Rect{URx: 100, URy: 100})
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Add(p)
	if err != nil {
		t.Fatal(err)
	}

	ref1, err := Share(doc, &FitH{Page: p.Ref(), Top: 50})
	if err != nil {
		t.Fatal(err)
	}
	ref2, err := Share(doc, &FitH{Page: p.Ref(), Top: 50})
	if err != nil {
		t.Fatal(err)
	}
	ref3, err := Share(doc, &FitH{Page: p.Ref(), Top: 60})
	if err != nil {
		t.Fatal(err)
	}
	if ref1 != ref2 || ref1 == ref3 {
		t.Error("wrong deduplication")
	}
	_, err = Share(doc, &Named{Name: "x"})
	if err == nil {
		t.Error("named destination shared")
	}

	err = AddNamed(doc, "top", &Fit{Page: p.Ref()})
	if err != nil {
		t.Fatal(err)
	}
	err = AddNamed(doc, "alias", &Named{Name: "top"})
	if err == nil {
		t.Error("name referring to a name accepted")
	}

	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Catalog().Names["Dests"]; !ok {
		t.Error("missing /Dests name tree")
	}
	want := "/Names [(top) [" + pdf.Format(p.Ref()) + " /Fit]]"
	if !bytes.Contains(buf.Bytes(), []byte(want)) {
		t.Errorf("missing %q", want)
	}
}
