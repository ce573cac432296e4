// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
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

// Package asciihex implements the encoder for the ASCIIHexDecode filter.
package asciihex

import (
	"io"
)

const hexDigits = "0123456789abcdef"

// Encode returns a writer which hex-encodes the data written to it and
// writes the result to w.  Output lines are at most width characters long.
// Closing the returned writer appends the EOD marker ">" and closes w.
func Encode(w io.WriteCloser, width int) io.WriteCloser {
	if width < 2 {
		width = 2
	}
	return &writer{
		w:     w,
		width: width,
		buf:   make([]byte, 0, 512),
	}
}

type writer struct {
	w     io.WriteCloser
	width int
	col   int
	buf   []byte
}

func (w *writer) Write(p []byte) (int, error) {
	for n, b := range p {
		if w.col+2 > w.width {
			w.buf = append(w.buf, '\n')
			w.col = 0
		}
		w.buf = append(w.buf, hexDigits[b>>4], hexDigits[b&15])
		w.col += 2

		if len(w.buf) > cap(w.buf)-3 {
			_, err := w.w.Write(w.buf)
			w.buf = w.buf[:0]
			if err != nil {
				return n, err
			}
		}
	}
	return len(p), nil
}

func (w *writer) Close() error {
	if w.col+1 > w.width {
		w.buf = append(w.buf, '\n')
	}
	w.buf = append(w.buf, '>')
	_, err := w.w.Write(w.buf)
	if err != nil {
		return err
	}
	return w.w.Close()
}
