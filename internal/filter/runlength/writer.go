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

// Package runlength implements the encoder for the RunLengthDecode filter.
//
// The format is described in section 7.4.5 of ISO 32000-2:2020.
package runlength

import (
	"io"
)

const (
	maxRun = 128
	eod    = 128
)

// Encode returns a writer which run-length encodes the data written to it
// and writes the result to w.  Closing the returned writer appends the EOD
// marker and closes w.
func Encode(w io.WriteCloser) io.WriteCloser {
	return &writer{w: w}
}

type writer struct {
	w       io.WriteCloser
	pending []byte
	out     []byte
}

func (w *writer) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	if len(w.pending) < 2*maxRun+2 {
		return len(p), nil
	}
	err := w.encode(false)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *writer) Close() error {
	err := w.encode(true)
	if err != nil {
		return err
	}
	_, err = w.w.Write([]byte{eod})
	if err != nil {
		return err
	}
	return w.w.Close()
}

// encode encodes the pending data.  Unless final is set, data at the end
// which may continue in the next call to Write is kept back.
func (w *writer) encode(final bool) error {
	data := w.pending
	out := w.out[:0]
	i := 0
	for i < len(data) {
		run := 1
		for i+run < len(data) && run < maxRun && data[i+run] == data[i] {
			run++
		}
		if !final && i+run == len(data) && run < maxRun {
			break
		}
		if run >= 3 {
			out = append(out, byte(257-run), data[i])
			i += run
			continue
		}

		// A literal extends up to the start of the next run of three
		// equal bytes.
		j := i
		for j < len(data) && j-i < maxRun {
			if j+2 < len(data) && data[j] == data[j+1] && data[j] == data[j+2] {
				break
			}
			j++
		}
		if !final && j+2 >= len(data) && j-i < maxRun {
			break
		}
		out = append(out, byte(j-i-1))
		out = append(out, data[i:j]...)
		i = j
	}

	w.pending = append(w.pending[:0], data[i:]...)
	w.out = out
	if len(out) == 0 {
		return nil
	}
	_, err := w.w.Write(out)
	return err
}
