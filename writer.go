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
	"bufio"
	"io"
)

// posWriter keeps track of the current position in the output and of the
// indirect object which is currently being written.  Objects writing
// strings or streams use this context to find the encryption key.
type posWriter struct {
	w   io.Writer
	pos int64

	doc *Document
	ref Reference      // the object currently being written
	enc *stdSecHandler // nil if the current object is not encrypted
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}

// setObject makes ref the current object and returns a function which
// restores the previous state.
func (w *posWriter) setObject(ref Reference, enc *stdSecHandler) func() {
	oldRef, oldEnc := w.ref, w.enc
	w.ref, w.enc = ref, enc
	return func() {
		w.ref, w.enc = oldRef, oldEnc
	}
}

// sink is the buffered main output of a document.
type sink struct {
	orig io.Writer
	buf  *bufio.Writer
}

func newSink(w io.Writer) *sink {
	return &sink{orig: w, buf: bufio.NewWriter(w)}
}

func (s *sink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// seeker returns the underlying io.WriteSeeker, if there is one.
func (s *sink) seeker() (io.WriteSeeker, bool) {
	ws, ok := s.orig.(io.WriteSeeker)
	return ws, ok
}

// countingWriter counts the bytes written to an io.Writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func (c *countingWriter) Close() error {
	return nil
}

// withDummyClose turns an io.Writer into an io.WriteCloser.
type withDummyClose struct {
	io.Writer
}

func (w withDummyClose) Close() error {
	return nil
}
