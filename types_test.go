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

package pdf

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Integer(-12), "-12"},
		{Real(1), "1."},
		{Real(-0.5), "-0.5"},
		{Number(2), "2"},
		{Number(2.25), "2.25"},
		{Name("Type"), "/Type"},
		{Name("A B"), "/A#20B"},
		{Name("x#y"), "/x#23y"},
		{Name("(x)"), "/#28x#29"},
		{String("a"), "(a)"},
		{String("a (test version)"), "(a (test version))"},
		{String("a (test version"), "(a \\(test version)"},
		{String("a\nb"), "(a\\nb)"},
		{String(""), "()"},
		{String("\000"), "<00>"},
		{Array{Integer(1), nil, Integer(3)}, "[1 null 3]"},
		{Array{}, "[]"},
		{Dict{}, "<<\n>>"},
		{Dict{"B": Integer(2), "A": Name("x"), "C": nil}, "<<\n/A /x\n/B 2\n>>"},
		{NewReference(12, 0), "12 0 R"},
		{NewReference(7, 3), "7 3 R"},
	}
	for _, test := range cases {
		out := Format(test.in)
		if out != test.out {
			t.Errorf("wrongly formatted, expected %q but got %q",
				test.out, out)
		}
	}
}

func TestUnassignedReference(t *testing.T) {
	var ref Reference
	err := ref.PDF(&bytes.Buffer{})
	var uErr *UnassignedReferenceError
	if !errors.As(err, &uErr) {
		t.Errorf("got %v, want UnassignedReferenceError", err)
	}

	err = Array{Integer(1), ref}.PDF(&bytes.Buffer{})
	if !errors.As(err, &uErr) {
		t.Errorf("got %v, want UnassignedReferenceError", err)
	}
}

func TestReference(t *testing.T) {
	ref := NewReference(0xFFFFFFFF, 0xFFFF)
	if ref.Number() != 0xFFFFFFFF || ref.Generation() != 0xFFFF {
		t.Errorf("wrong reference %d %d", ref.Number(), ref.Generation())
	}
	if s := NewReference(5, 0).String(); s != "obj_5" {
		t.Errorf("wrong string %q", s)
	}
	if s := NewReference(5, 2).String(); s != "obj_5@2" {
		t.Errorf("wrong string %q", s)
	}
}

func TestTextString(t *testing.T) {
	cases := []struct {
		in  string
		out []byte
	}{
		{"", []byte{}},
		{"hello", []byte("hello")},
		{"ein Bär", []byte("ein B\xe4r")},
		{"€", []byte{0xA0}},
		{"中文", []byte{0xFE, 0xFF, 0x4E, 0x2D, 0x65, 0x87}},
	}
	for _, test := range cases {
		got := []byte(TextString(test.in))
		if d := cmp.Diff(got, test.out); d != "" {
			t.Errorf("%q: (-got +want)\n%s", test.in, d)
		}
	}
}

func TestDateString(t *testing.T) {
	PST := time.FixedZone("PST", -8*60*60)
	cases := []struct {
		in  time.Time
		out string
	}{
		{time.Date(1998, 12, 23, 19, 52, 0, 0, PST), "D:19981223195200-08'00'"},
		{time.Date(2020, 12, 24, 16, 30, 12, 0, time.FixedZone("", 90*60)), "D:20201224163012+01'30'"},
	}
	for _, test := range cases {
		got := string(Date(test.in))
		if got != test.out {
			t.Errorf("wrong date %q, want %q", got, test.out)
		}
	}
}
