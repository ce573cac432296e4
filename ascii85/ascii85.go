// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

// Package ascii85 implements the encoder for the ASCII85Decode filter.
//
// The format is described in section 7.4.3 of ISO 32000-2:2020.
package ascii85

import (
	"io"
)

// Encode returns a writer which ASCII85-encodes the data written to it and
// writes the result to w.  Output lines are at most width characters long;
// if width is zero or negative, no line breaks are inserted.  Closing the
// returned writer appends the EOD marker "~>" and closes w.
func Encode(w io.WriteCloser, width int) io.WriteCloser {
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

	v uint32 // the current group of up to four input bytes
	k int    // number of bytes in v
}

func (w *writer) Write(p []byte) (int, error) {
	for n, b := range p {
		w.v = w.v<<8 | uint32(b)
		w.k++
		if w.k < 4 {
			continue
		}

		if w.v == 0 {
			w.emit('z')
		} else {
			var c [5]byte
			encodeGroup(&c, w.v)
			w.emit(c[:]...)
		}
		w.v = 0
		w.k = 0

		if len(w.buf) > cap(w.buf)-8 {
			err := w.flush()
			if err != nil {
				return n, err
			}
		}
	}
	return len(p), nil
}

func (w *writer) Close() error {
	if w.k > 0 {
		// A final partial group of k bytes is padded with zeros, and
		// only the first k+1 characters are written.
		var c [5]byte
		encodeGroup(&c, w.v<<((4-w.k)*8))
		w.emit(c[:w.k+1]...)
		w.v = 0
		w.k = 0
	}
	w.emit('~', '>')
	err := w.flush()
	if err != nil {
		return err
	}
	return w.w.Close()
}

// emit appends a unit of output which is not split across lines.
func (w *writer) emit(c ...byte) {
	if w.width > 0 && w.col > 0 && w.col+len(c) > w.width {
		w.buf = append(w.buf, '\n')
		w.col = 0
	}
	w.buf = append(w.buf, c...)
	w.col += len(c)
}

func (w *writer) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	_, err := w.w.Write(w.buf)
	w.buf = w.buf[:0]
	return err
}

func encodeGroup(c *[5]byte, v uint32) {
	for i := 4; i >= 0; i-- {
		c[i] = byte(v%85) + '!'
		v /= 85
	}
}
