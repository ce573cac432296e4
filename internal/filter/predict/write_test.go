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

package predict

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type writeCloser struct {
	bytes.Buffer
	closed bool
}

func (w *writeCloser) Close() error {
	w.closed = true
	return nil
}

// decode reverses the predictor, for use in tests.
func decode(t *testing.T, data []byte, p *Params) []byte {
	t.Helper()
	n := p.bytesPerRow()
	var res []byte
	prev := make([]byte, n)
	switch {
	case p.Predictor == 2:
		if len(data)%n != 0 {
			t.Fatalf("incomplete row")
		}
		for len(data) > 0 {
			row := bytes.Clone(data[:n])
			data = data[n:]
			switch p.BitsPerComponent {
			case 8:
				for i := p.Colors; i < n; i++ {
					row[i] += row[i-p.Colors]
				}
			case 16:
				step := 2 * p.Colors
				for i := step; i < n; i += 2 {
					v := uint16(row[i])<<8 | uint16(row[i+1])
					v += uint16(row[i-step])<<8 | uint16(row[i-step+1])
					row[i] = byte(v >> 8)
					row[i+1] = byte(v)
				}
			default:
				bpc := p.BitsPerComponent
				mask := uint(1)<<bpc - 1
				out := make([]byte, n)
				for i := 0; i < p.Columns*p.Colors; i++ {
					v := getBits(row, i, bpc)
					if i >= p.Colors {
						v += getBits(out, i-p.Colors, bpc)
					}
					setBits(out, i, bpc, v&mask)
				}
				row = out
			}
			res = append(res, row...)
		}
	default:
		bpp := p.bytesPerPixel()
		if len(data)%(n+1) != 0 {
			t.Fatalf("incomplete row")
		}
		for len(data) > 0 {
			tp := data[0]
			row := bytes.Clone(data[1 : n+1])
			data = data[n+1:]
			for i := range row {
				var a, b, c byte
				if i >= bpp {
					a = row[i-bpp]
					c = prev[i-bpp]
				}
				b = prev[i]
				switch tp {
				case 1:
					row[i] += a
				case 2:
					row[i] += b
				case 3:
					row[i] += byte((int(a) + int(b)) / 2)
				case 4:
					row[i] += paeth(a, b, c)
				}
			}
			res = append(res, row...)
			prev = row
		}
	}
	return res
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, pred := range []int{2, 10, 11, 12, 13, 14, 15} {
		for _, bpc := range []int{1, 2, 4, 8, 16} {
			for _, colors := range []int{1, 3} {
				p := &Params{
					Predictor:        pred,
					Colors:           colors,
					BitsPerComponent: bpc,
					Columns:          7,
				}
				name := fmt.Sprintf("P%d-B%d-C%d", pred, bpc, colors)
				t.Run(name, func(t *testing.T) {
					rows := 5
					in := make([]byte, rows*p.bytesPerRow())
					for i := range in {
						in[i] = byte(rng.Intn(4) * 60)
					}
					// unused bits at the end of rows are zero
					if extra := (p.bitsPerPixel() * p.Columns) % 8; extra != 0 {
						for r := 1; r <= rows; r++ {
							in[r*p.bytesPerRow()-1] &= byte(0xFF << (8 - extra))
						}
					}

					buf := &writeCloser{}
					w, err := NewWriter(buf, p)
					if err != nil {
						t.Fatal(err)
					}
					// write in odd-sized pieces
					for pos := 0; pos < len(in); pos += 5 {
						_, err = w.Write(in[pos:min(pos+5, len(in))])
						if err != nil {
							t.Fatal(err)
						}
					}
					err = w.Close()
					if err != nil {
						t.Fatal(err)
					}
					if !buf.closed {
						t.Error("underlying writer not closed")
					}

					out := decode(t, buf.Bytes(), p)
					if d := cmp.Diff(out, in); d != "" {
						t.Errorf("(-got +want)\n%s", d)
					}
				})
			}
		}
	}
}

func TestPNGSub(t *testing.T) {
	p := &Params{Predictor: 11, Colors: 1, BitsPerComponent: 8, Columns: 4}
	buf := &writeCloser{}
	w, err := NewWriter(buf, p)
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.Write([]byte{10, 20, 30, 40, 10, 10, 10, 10})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 10, 10, 10, 10, 1, 10, 0, 0, 0}
	if d := cmp.Diff(buf.Bytes(), want); d != "" {
		t.Errorf("(-got +want)\n%s", d)
	}
}

func TestIdentity(t *testing.T) {
	buf := &writeCloser{}
	w, err := NewWriter(buf, &Params{Predictor: 1})
	if err != nil {
		t.Fatal(err)
	}
	if w != buf {
		t.Error("predictor 1 should not wrap the writer")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		p  Params
		ok bool
	}{
		{Params{Predictor: 1}, true},
		{Params{Predictor: 2, Colors: 3, BitsPerComponent: 8, Columns: 10}, true},
		{Params{Predictor: 2, Colors: 61, BitsPerComponent: 8, Columns: 10}, false},
		{Params{Predictor: 12, Colors: 256, BitsPerComponent: 8, Columns: 10}, true},
		{Params{Predictor: 12, Colors: 257, BitsPerComponent: 8, Columns: 10}, false},
		{Params{Predictor: 12, Colors: 1, BitsPerComponent: 3, Columns: 10}, false},
		{Params{Predictor: 12, Colors: 1, BitsPerComponent: 8, Columns: 0}, false},
		{Params{Predictor: 12, Colors: 0, BitsPerComponent: 8, Columns: 1}, false},
		{Params{Predictor: 3, Colors: 1, BitsPerComponent: 8, Columns: 1}, false},
		{Params{Predictor: 16, Colors: 1, BitsPerComponent: 8, Columns: 1}, false},
	}
	for _, tc := range cases {
		err := tc.p.Validate()
		if (err == nil) != tc.ok {
			t.Errorf("%+v: got error %v", tc.p, err)
		}
	}
}
