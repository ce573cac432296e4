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
	"io"
)

type writer struct {
	w io.WriteCloser
	p *Params

	row  []byte // the current, incomplete row
	prev []byte // the previous row, for PNG predictors
	out  []byte // one encoded row, including the PNG tag byte

	// scratch space for the PNG optimum predictor
	trial []byte
}

// NewWriter returns a writer which applies the predictor to the data
// and writes the result to w.  Data must consist of complete rows.
// Closing the returned writer closes w.  For predictor 1, w is returned
// unchanged.
func NewWriter(w io.WriteCloser, p *Params) (io.WriteCloser, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}
	if p.Predictor == 1 {
		return w, nil
	}

	n := p.bytesPerRow()
	res := &writer{
		w:   w,
		p:   p,
		row: make([]byte, 0, n),
	}
	if p.Predictor >= 10 {
		res.prev = make([]byte, n)
		res.out = make([]byte, n+1)
		if p.Predictor == 15 {
			res.trial = make([]byte, n+1)
		}
	} else {
		res.out = make([]byte, n)
	}
	return res, nil
}

func (w *writer) Write(data []byte) (int, error) {
	n := 0
	for len(data) > 0 {
		k := min(cap(w.row)-len(w.row), len(data))
		w.row = append(w.row, data[:k]...)
		data = data[k:]
		n += k

		if len(w.row) == cap(w.row) {
			err := w.encodeRow()
			if err != nil {
				return n, err
			}
			w.row = w.row[:0]
		}
	}
	return n, nil
}

// Close writes the last row, padded with zeros if it is incomplete, and
// closes the underlying writer.
func (w *writer) Close() error {
	if len(w.row) > 0 {
		for len(w.row) < cap(w.row) {
			w.row = append(w.row, 0)
		}
		err := w.encodeRow()
		if err != nil {
			return err
		}
		w.row = w.row[:0]
	}
	return w.w.Close()
}

func (w *writer) encodeRow() error {
	if w.p.Predictor == 2 {
		w.tiffRow()
	} else {
		w.pngRow()
		copy(w.prev, w.row)
	}
	_, err := w.w.Write(w.out)
	return err
}

// tiffRow applies horizontal differencing to the components of the
// current row.
func (w *writer) tiffRow() {
	p := w.p
	bpc := p.BitsPerComponent
	out := w.out

	if bpc == 8 {
		for i, b := range w.row {
			if i < p.Colors {
				out[i] = b
			} else {
				out[i] = b - w.row[i-p.Colors]
			}
		}
		return
	}
	if bpc == 16 {
		step := 2 * p.Colors
		for i := 0; i < len(w.row); i += 2 {
			v := uint16(w.row[i])<<8 | uint16(w.row[i+1])
			if i >= step {
				v -= uint16(w.row[i-step])<<8 | uint16(w.row[i-step+1])
			}
			out[i] = byte(v >> 8)
			out[i+1] = byte(v)
		}
		return
	}

	// sub-byte components
	clear(out)
	mask := uint(1)<<bpc - 1
	n := p.Columns * p.Colors
	for i := 0; i < n; i++ {
		v := getBits(w.row, i, bpc)
		if i >= p.Colors {
			v -= getBits(w.row, i-p.Colors, bpc)
		}
		setBits(out, i, bpc, v&mask)
	}
}

func getBits(buf []byte, idx, bpc int) uint {
	bit := idx * bpc
	shift := 8 - bpc - bit%8
	return uint(buf[bit/8]>>shift) & (1<<bpc - 1)
}

func setBits(buf []byte, idx, bpc int, v uint) {
	bit := idx * bpc
	shift := 8 - bpc - bit%8
	buf[bit/8] |= byte(v << shift)
}

// pngRow encodes the current row using the PNG predictor.  The first
// byte of the output is the PNG filter type.
func (w *writer) pngRow() {
	if w.p.Predictor != 15 {
		pngFilter(w.out, w.row, w.prev, byte(w.p.Predictor-10), w.p.bytesPerPixel())
		return
	}

	// Choose the filter with the smallest sum of absolute differences, as
	// recommended by the PNG specification.
	bpp := w.p.bytesPerPixel()
	best := -1
	for tp := byte(0); tp <= 4; tp++ {
		pngFilter(w.trial, w.row, w.prev, tp, bpp)
		score := 0
		for _, b := range w.trial[1:] {
			score += abs(int(int8(b)))
		}
		if best < 0 || score < best {
			best = score
			w.out, w.trial = w.trial, w.out
		}
	}
}

func pngFilter(out, row, prev []byte, tp byte, bpp int) {
	out[0] = tp
	dst := out[1:]
	for i, x := range row {
		var a, b, c byte
		if i >= bpp {
			a = row[i-bpp]
			c = prev[i-bpp]
		}
		b = prev[i]

		switch tp {
		case 0:
			dst[i] = x
		case 1:
			dst[i] = x - a
		case 2:
			dst[i] = x - b
		case 3:
			dst[i] = x - byte((int(a)+int(b))/2)
		case 4:
			dst[i] = x - paeth(a, b, c)
		}
	}
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
