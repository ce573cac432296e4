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

package structure

import (
	"bytes"
	"testing"

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

func TestNeedsAccessibility(t *testing.T) {
	doc, err := pdf.NewDocument(&bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(doc)
	if err == nil {
		t.Error("structure tree created without Accessibility option")
	}
}

func TestTree(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := pdf.NewDocument(buf, &pdf.Options{
		Version:            pdf.V1_5,
		Accessibility:      true,
		DisableCompression: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	page, err := doc.NewPage(rect.Rect{URx: 595, URy: 842})
	if err != nil {
		t.Fatal(err)
	}

	tree, err := New(doc)
	if err != nil {
		t.Fatal(err)
	}
	tree.RoleMap = map[pdf.Name]pdf.Name{"Para": "P"}
	root, err := tree.AddElement("Document")
	if err != nil {
		t.Fatal(err)
	}
	root.Lang = language.German
	p1, err := root.AddChild("Para")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := root.AddChild("P")
	if err != nil {
		t.Fatal(err)
	}
	link, err := root.AddChild("Link")
	if err != nil {
		t.Fatal(err)
	}

	for i, e := range []*Element{p1, p2} {
		mcid, err := e.AddMarkedContent(page)
		if err != nil {
			t.Fatal(err)
		}
		if mcid != i {
			t.Errorf("got MCID %d, want %d", mcid, i)
		}
	}
	annot := pdf.NewDictObject(pdf.Dict{"Subtype": pdf.Name("Link")})
	annotRef, err := doc.Register(annot)
	if err != nil {
		t.Fatal(err)
	}
	key, err := link.AddObject(page, annotRef)
	if err != nil {
		t.Fatal(err)
	}
	if key != 1 || page.StructParents != 0 {
		t.Errorf("wrong parent tree keys %d, %d", key, page.StructParents)
	}

	f := pdf.Format
	got := f(tree)
	want := "/ParentTree <<\n/Nums [0 [" + f(p1.Ref()) + " " + f(p2.Ref()) + "] 1 " + f(link.Ref()) + "]\n>>"
	if !bytes.Contains([]byte(got), []byte(want)) {
		t.Errorf("got %q, want %q", got, want)
	}
	if !bytes.Contains([]byte(got), []byte("/ParentTreeNextKey 2")) {
		t.Errorf("missing /ParentTreeNextKey in %q", got)
	}
	if got := f(p1); !bytes.Contains([]byte(got), []byte("/K 0\n")) {
		t.Errorf("wrong kids in %q", got)
	}

	err = doc.Add(page)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()
	for _, want := range []string{
		"/Type /ObjStm",
		"/MarkInfo <<\n/Marked true\n>>",
		"/StructTreeRoot " + f(tree.Ref()),
		"/S /Para",
		"/Lang (de)",
		"/RoleMap <<\n/Para /P\n>>",
		"/StructParents 0",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("missing %q", want)
		}
	}
}
