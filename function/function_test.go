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


package function

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

func newDoc(t *testing.T) (*pdf.Document, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	doc, err := pdf.NewDocument(buf, &pdf.Options{DisableCompression: true})
	if err != nil {
		t.Fatal(err)
	}
	return doc, buf
}

func TestType2Apply(t *testing.T) {
	f := &Type2{
		XMin: 0, XMax: 1,
		C0: []float64{0, 1},
		C1: []float64{1, 0},
		N:  2,
	}
	cases := []struct {
		x   float64
		out []float64
	}{
		{0, []float64{0, 1}},
		{0.5, []float64{0.25, 0.75}},
		{1, []float64{1, 0}},
		{2, []float64{1, 0}},
		{-1, []float64{0, 1}},
	}
	for _, tc := range cases {
		got := f.Apply(tc.x)
		if d := cmp.Diff(got, tc.out); d != "" {
			t.Errorf("x=%g: (-got +want)\n%s", tc.x, d)
		}
	}
}

func TestType3Apply(t *testing.T) {
	up := &Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 1}
	down := &Type2{XMin: 0, XMax: 1, C0: []float64{1}, C1: []float64{0}, N: 1}
	f := &Type3{
		XMin: 0, XMax: 2,
		Functions: []Function{up, down},
		Bounds:    []float64{1},
		Encode:    []float64{0, 1, 0, 1},
	}
	if err := f.validate(); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, y float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 0.5},
		{2, 0},
		{3, 0},
	}
	for _, tc := range cases {
		got := f.Apply(tc.x)
		if len(got) != 1 || math.Abs(got[0]-tc.y) > 1e-9 {
			t.Errorf("x=%g: got %v, want %g", tc.x, got, tc.y)
		}
	}
}

func TestType0Apply(t *testing.T) {
	f := &Type0{
		Domain:        []float64{0, 1},
		Range:         []float64{0, 1},
		Size:          []int{3},
		BitsPerSample: 8,
		Samples:       []byte{0, 255, 0},
	}
	if err := f.validate(); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, y float64
	}{
		{0, 0},
		{0.25, 0.5},
		{0.5, 1},
		{1, 0},
	}
	for _, tc := range cases {
		got := f.Apply(tc.x)
		if math.Abs(got[0]-tc.y) > 1e-9 {
			t.Errorf("x=%g: got %v, want %g", tc.x, got, tc.y)
		}
	}

	// 2 inputs, 4 bits per sample
	g := &Type0{
		Domain:        []float64{0, 1, 0, 1},
		Range:         []float64{0, 15},
		Decode:        []float64{0, 15},
		Size:          []int{2, 2},
		BitsPerSample: 4,
		Samples:       []byte{0x01, 0x23},
	}
	if err := g.validate(); err != nil {
		t.Fatal(err)
	}
	if got := g.Apply(1, 1); got[0] != 3 {
		t.Errorf("corner: got %v, want 3", got)
	}
	if got := g.Apply(0.5, 0.5); got[0] != 1.5 {
		t.Errorf("centre: got %v, want 1.5", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []Function{
		&Type2{XMin: 1, XMax: 0, C0: []float64{0}, C1: []float64{1}, N: 1},
		&Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1, 2}, N: 1},
		&Type2{XMin: -1, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 0.5},
		&Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: math.Inf(1)},
		&Type3{XMin: 0, XMax: 1},
		&Type0{Domain: []float64{0, 1}, Range: []float64{0, 1}, Size: []int{2}, BitsPerSample: 7, Samples: []byte{0, 0}},
		&Type0{Domain: []float64{0, 1}, Range: []float64{0, 1}, Size: []int{4}, BitsPerSample: 8, Samples: []byte{0}},
		&Type4{Domain: []float64{0, 1}, Range: []float64{0, 1}, Program: "dup } {"},
	}
	for i, f := range cases {
		err := f.validate()
		var fErr *InvalidFunctionError
		if !errors.As(err, &fErr) {
			t.Errorf("%d: got %v, want InvalidFunctionError", i, err)
		}
	}
}

func TestShareDedup(t *testing.T) {
	doc, buf := newDoc(t)

	a := &Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 1}
	b := &Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 1}
	refA, err := Share(doc, a)
	if err != nil {
		t.Fatal(err)
	}
	refB, err := Share(doc, b)
	if err != nil {
		t.Fatal(err)
	}
	if refA != refB {
		t.Error("equal functions were not merged")
	}

	// The stitching function uses a copy of a, which is replaced by a.
	c := &Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 1}
	st := &Type3{
		XMin: 0, XMax: 1,
		Functions: []Function{c},
		Encode:    []float64{0, 1},
	}
	_, err = Share(doc, st)
	if err != nil {
		t.Fatal(err)
	}
	if st.Functions[0] != Function(a) {
		t.Error("component function was not replaced")
	}

	ps := &Type4{
		Domain:  []float64{0, 1},
		Range:   []float64{0, 1, 0, 1},
		Program: "dup",
	}
	_, err = Share(doc, ps)
	if err != nil {
		t.Fatal(err)
	}

	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	if n := bytes.Count(out, []byte("/FunctionType 2")); n != 1 {
		t.Errorf("%d Type 2 functions written, want 1", n)
	}
	want := "/Functions [" + pdf.Format(refA) + "]"
	if !bytes.Contains(out, []byte(want)) {
		t.Errorf("missing %q", want)
	}
	if !bytes.Contains(out, []byte("stream\n{dup}\nendstream")) {
		t.Error("PostScript program missing")
	}
}

func TestShareVersion(t *testing.T) {
	doc, err := pdf.NewDocument(&bytes.Buffer{}, &pdf.Options{
		Version:      pdf.V1_2,
		FixedVersion: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	f := &Type2{XMin: 0, XMax: 1, C0: []float64{0}, C1: []float64{1}, N: 1}
	_, err = Share(doc, f)
	var vErr *pdf.VersionError
	if !errors.As(err, &vErr) {
		t.Errorf("got %v, want VersionError", err)
	}
}
