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
	"compress/zlib"
	"fmt"
	"io"
	"testing"

	"github.com/apache/xmlgraphics-fop-sub006/internal/debug/memfile"
)

func TestStreamLength(t *testing.T) {
	data := bytes.Repeat([]byte("0 0 m 100 100 l S\n"), 100)
	for _, seekable := range []bool{false, true} {
		for _, precompute := range []bool{false, true} {
			for _, cache := range []CacheKind{CacheMemory, CacheTempFile} {
				name := fmt.Sprintf("seek=%t,pre=%t,cache=%d", seekable, precompute, cache)
				t.Run(name, func(t *testing.T) {
					var w io.Writer
					var out func() []byte
					if seekable {
						f := memfile.New()
						w = f
						out = func() []byte { return f.Data }
					} else {
						buf := &bytes.Buffer{}
						w = buf
						out = buf.Bytes
					}
					opt := &Options{
						DisableCompression: true,
						Cache:              cache,
						TempDir:            t.TempDir(),
					}
					doc, err := NewDocument(w, opt)
					if err != nil {
						t.Fatal(err)
					}
					stm := NewStream(nil, StreamContent, nil)
					stm.SetData(data)
					stm.Precompute = precompute
					ref, err := doc.Register(stm)
					if err != nil {
						t.Fatal(err)
					}
					err = doc.Close()
					if err != nil {
						t.Fatal(err)
					}

					objs := indirectObjects(t, out())
					got := streamData(t, objs, ref.Number())
					if !bytes.Equal(got, data) {
						t.Error("wrong stream data")
					}
					indirect := lengthRe.FindSubmatch(objs[ref.Number()])[2] != nil
					if indirect == precompute {
						t.Errorf("indirect length %t, precompute %t", indirect, precompute)
					}
				})
			}
		}
	}
}

func TestCompressedStream(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := NewDocument(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	data := bytes.Repeat([]byte("BT /F1 12 Tf (Hello) Tj ET\n"), 50)
	stm := NewStream(Dict{"Type": Name("Test")}, StreamContent, nil)
	stm.SetData(data)
	ref, err := doc.Register(stm)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}

	objs := indirectObjects(t, buf.Bytes())
	if !bytes.Contains(objs[ref.Number()], []byte("/Filter /FlateDecode")) {
		t.Error("missing /Filter")
	}
	enc := streamData(t, objs, ref.Number())
	zr, err := zlib.NewReader(bytes.NewReader(enc))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("wrong stream data")
	}
}

func TestDeclaredFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := NewDocument(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}
	stm := NewStream(Dict{"Filter": Name("DCTDecode")}, StreamImage, nil)
	stm.SetData(data)
	ref, err := doc.Register(stm)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	objs := indirectObjects(t, buf.Bytes())
	got := streamData(t, objs, ref.Number())
	if !bytes.Equal(got, data) {
		t.Error("data with declared filter was modified")
	}
	if bytes.Contains(objs[ref.Number()], []byte("FlateDecode")) {
		t.Error("default filter applied despite declared /Filter")
	}
}

func TestPlaceholder(t *testing.T) {
	for _, seekable := range []bool{false, true} {
		t.Run(fmt.Sprintf("seek=%t", seekable), func(t *testing.T) {
			var w io.Writer
			var out func() []byte
			if seekable {
				f := memfile.New()
				w = f
				out = func() []byte { return f.Data }
			} else {
				buf := &bytes.Buffer{}
				w = buf
				out = buf.Bytes
			}
			doc, err := NewDocument(w, nil)
			if err != nil {
				t.Fatal(err)
			}

			length := NewPlaceholder(doc, 10)
			obj := NewDictObject(Dict{"Length1": length})
			ref, err := doc.Register(obj)
			if err != nil {
				t.Fatal(err)
			}
			err = doc.Flush()
			if err != nil {
				t.Fatal(err)
			}
			err = length.Set(Integer(12345))
			if err != nil {
				t.Fatal(err)
			}

			known := NewPlaceholder(doc, 5)
			err = known.Set(Integer(7))
			if err != nil {
				t.Fatal(err)
			}
			ref2, err := doc.Register(NewDictObject(Dict{"X": known}))
			if err != nil {
				t.Fatal(err)
			}

			err = doc.Close()
			if err != nil {
				t.Fatal(err)
			}

			objs := indirectObjects(t, out())
			body := string(objs[ref.Number()])
			if seekable {
				if body != "<<\n/Length1 12345     \n>>" {
					t.Errorf("wrong object %q", body)
				}
			} else {
				var num int
				_, err := fmt.Sscanf(body, "<<\n/Length1 %d 0 R\n>>", &num)
				if err != nil {
					t.Fatalf("wrong object %q", body)
				}
				if got := string(objs[uint32(num)]); got != "12345" {
					t.Errorf("wrong value %q", got)
				}
			}
			if got := string(objs[ref2.Number()]); got != "<<\n/X 7\n>>" {
				t.Errorf("wrong object %q", got)
			}
		})
	}
}

func TestPlaceholderTooLong(t *testing.T) {
	doc, err := NewDocument(memfile.New(), nil)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlaceholder(doc, 3)
	err = p.Set(Integer(12345))
	if err == nil {
		t.Error("oversized value accepted")
	}
}
