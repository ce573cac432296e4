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

package memfile

import (
	"io"
	"testing"
)

var _ io.ReadWriteSeeker = (*MemFile)(nil)

func TestWriteSeek(t *testing.T) {
	f := New()
	_, err := f.Write([]byte("Hello, World!"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Seek(7, io.SeekStart)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Write([]byte("Go"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(f.Data); got != "Hello, Gorld!" {
		t.Errorf("got %q", got)
	}

	// writing beyond the end fills the gap with zeros
	_, err = f.Seek(2, io.SeekEnd)
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Write([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(f.Data); got != "Hello, Gorld!\x00\x00x" {
		t.Errorf("got %q", got)
	}
}

func TestRead(t *testing.T) {
	f := &MemFile{Data: []byte("Hello, World!")}
	buf := make([]byte, 5)
	n, err := f.Read(buf)
	if err != nil || n != 5 || string(buf) != "Hello" {
		t.Fatalf("Read: %d %v %q", n, err, buf)
	}
	rest, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(rest) != ", World!" {
		t.Errorf("got %q", rest)
	}
}

func TestSeekErrors(t *testing.T) {
	f := &MemFile{Data: []byte("abc"), Offset: 1}
	cases := []struct {
		offset int64
		whence int
		err    error
	}{
		{-1, io.SeekStart, errInvalidOffset},
		{-4, io.SeekEnd, errInvalidOffset},
		{0, 99, errInvalidWhence},
	}
	for _, tc := range cases {
		pos, err := f.Seek(tc.offset, tc.whence)
		if err != tc.err {
			t.Errorf("Seek(%d, %d): got %v, want %v", tc.offset, tc.whence, err, tc.err)
		}
		if pos != 1 {
			t.Errorf("Seek(%d, %d): offset changed to %d", tc.offset, tc.whence, pos)
		}
	}
}
