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
	"io"
	"os"
)

// StreamCache buffers encoded stream data until it is written to the
// output.  Data is kept either in memory or in a temporary file, as
// selected by [Options.Cache].
type StreamCache struct {
	mem  *bytes.Buffer
	file *os.File
	size int64
}

// NewStreamCache allocates a new stream cache.  For in-memory caches,
// sizeHint is used to preallocate the buffer.  For file caches, dir is the
// directory for the temporary file.
func NewStreamCache(kind CacheKind, dir string, sizeHint int) (*StreamCache, error) {
	c := &StreamCache{}
	switch kind {
	case CacheTempFile:
		fd, err := os.CreateTemp(dir, "pdf-stream-*")
		if err != nil {
			return nil, err
		}
		c.file = fd
	default:
		if sizeHint < 0 {
			sizeHint = 0
		}
		c.mem = bytes.NewBuffer(make([]byte, 0, sizeHint))
	}
	return c, nil
}

// Write appends data to the cache.
func (c *StreamCache) Write(p []byte) (int, error) {
	var n int
	var err error
	if c.file != nil {
		n, err = c.file.Write(p)
	} else if c.mem != nil {
		n, err = c.mem.Write(p)
	} else {
		return 0, errClosed
	}
	c.size += int64(n)
	return n, err
}

// Close releases the resources held by the cache.  Temporary files are
// removed.
func (c *StreamCache) Close() error {
	c.mem = nil
	if c.file == nil {
		return nil
	}
	fd := c.file
	c.file = nil
	err := fd.Close()
	err2 := os.Remove(fd.Name())
	if err == nil {
		err = err2
	}
	return err
}

// Size returns the number of bytes stored in the cache.
func (c *StreamCache) Size() int64 {
	return c.size
}

// WriteTo copies the cached data to w.
func (c *StreamCache) WriteTo(w io.Writer) (int64, error) {
	if c.file != nil {
		_, err := c.file.Seek(0, io.SeekStart)
		if err != nil {
			return 0, err
		}
		return io.Copy(w, io.LimitReader(c.file, c.size))
	}
	if c.mem == nil {
		return 0, errClosed
	}
	n, err := w.Write(c.mem.Bytes())
	return int64(n), err
}
