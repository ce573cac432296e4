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
	"errors"
	"io"
)

// MemFile is an in-memory file.  Writes beyond the end of the data extend
// the file, filling any gap with zeros.
type MemFile struct {
	// Data holds the file contents.
	Data []byte

	// Offset is the current position for reading and writing.
	Offset int64
}

// New creates a new, empty MemFile.
func New() *MemFile {
	return &MemFile{}
}

// Write implements the [io.Writer] interface.
func (f *MemFile) Write(p []byte) (int, error) {
	end := f.Offset + int64(len(p))
	if end > int64(len(f.Data)) {
		if end > int64(cap(f.Data)) {
			grown := make([]byte, len(f.Data), max(end, 2*int64(cap(f.Data))))
			copy(grown, f.Data)
			f.Data = grown
		}
		old := len(f.Data)
		f.Data = f.Data[:end]
		clear(f.Data[old:])
	}
	copy(f.Data[f.Offset:], p)
	f.Offset = end
	return len(p), nil
}

// Read implements the [io.Reader] interface.
func (f *MemFile) Read(p []byte) (int, error) {
	if f.Offset >= int64(len(f.Data)) {
		return 0, io.EOF
	}
	n := copy(p, f.Data[f.Offset:])
	f.Offset += int64(n)
	return n, nil
}

// Seek implements the [io.Seeker] interface.
func (f *MemFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += f.Offset
	case io.SeekEnd:
		offset += int64(len(f.Data))
	default:
		return f.Offset, errInvalidWhence
	}
	if offset < 0 {
		return f.Offset, errInvalidOffset
	}
	f.Offset = offset
	return offset, nil
}

// Close implements the [io.Closer] interface.  The data stays available.
func (f *MemFile) Close() error {
	return nil
}

var (
	errInvalidWhence = errors.New("invalid whence")
	errInvalidOffset = errors.New("invalid offset")
)
