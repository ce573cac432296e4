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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/bits"
)

// xrefEntry records where an object was written.
type xrefEntry struct {
	written bool
	pos     int64  // byte offset, for objects written directly
	gen     uint16 // generation number
	stream  uint32 // number of the containing object stream, or 0
	index   int    // index within the containing object stream
}

// fields returns the three fields of the entry in a cross-reference stream.
func (entry *xrefEntry) fields() (tp byte, f2 uint64, f3 uint64) {
	switch {
	case !entry.written:
		return 0, 0, 0
	case entry.stream != 0:
		return 2, uint64(entry.stream), uint64(entry.index)
	default:
		return 1, uint64(entry.pos), uint64(entry.gen)
	}
}

// writeXRefTable writes a classic cross-reference table, followed by the
// trailer dictionary.  The return value is the position of the table.
func (d *Document) writeXRefTable(trailer Dict) (int64, error) {
	xrefPos := d.w.pos
	_, err := fmt.Fprintf(d.w, "xref\n0 %d\n", d.nextNumber)
	if err != nil {
		return 0, err
	}
	for i := uint32(0); i < d.nextNumber; i++ {
		entry := &d.xref[i]
		if entry.stream != 0 {
			return 0, errors.New("object streams need a cross-reference stream")
		}
		if entry.written {
			_, err = fmt.Fprintf(d.w, "%010d %05d n\r\n", entry.pos, entry.gen)
		} else {
			// free object
			_, err = d.w.Write([]byte("0000000000 65535 f\r\n"))
		}
		if err != nil {
			return 0, err
		}
	}

	_, err = d.w.Write([]byte("trailer\n"))
	if err != nil {
		return 0, err
	}
	err = trailer.PDF(d.w)
	if err != nil {
		return 0, err
	}
	return xrefPos, nil
}

// writeXRefStream writes a cross-reference stream, which also carries the
// trailer entries.  The stream lists itself and is never encrypted.  The
// return value is the position of the stream object.
func (d *Document) writeXRefStream(trailer Dict) (int64, error) {
	xref := &Stream{}
	ref, err := d.AssignNumber(xref)
	if err != nil {
		return 0, err
	}
	xrefPos := d.w.pos
	self := &d.xref[ref.Number()]
	self.pos = xrefPos

	var max2, max3 uint64
	for i := uint32(1); i < d.nextNumber; i++ {
		entry := d.xref[i]
		if i == ref.Number() {
			entry.written = true
		}
		_, f2, f3 := entry.fields()
		max2 = max(max2, f2)
		max3 = max(max3, f3)
	}
	w2 := max((bits.Len64(max2)+7)/8, 1)
	w3 := max((bits.Len64(max3)+7)/8, 1)

	data := &bytes.Buffer{}
	data.Grow((1 + w2 + w3) * int(d.nextNumber))
	for i := uint32(0); i < d.nextNumber; i++ {
		entry := d.xref[i]
		if i == ref.Number() {
			entry.written = true
		}
		tp, f2, f3 := entry.fields()
		data.WriteByte(tp)
		encodeInt(data, f2, w2)
		encodeInt(data, f3, w3)
	}

	dict := Dict{
		"Type": Name("XRef"),
		"Size": Integer(d.nextNumber),
		"W":    Array{Integer(1), Integer(w2), Integer(w3)},
	}
	for key, val := range trailer {
		if key == "Size" {
			continue
		}
		dict[key] = val
	}
	xref.Dict = dict
	xref.Precompute = true
	xref.SetData(data.Bytes())
	if d.opt.DisableCompression {
		err = xref.Filters.AddFilter(FilterNull{})
	} else {
		err = xref.Filters.AddFilter(&FilterFlate{})
	}
	if err != nil {
		return 0, err
	}

	d.log.Debug("cross-reference stream",
		slog.Int("entries", int(d.nextNumber)),
		slog.Int("w2", w2), slog.Int("w3", w3))
	err = d.writeIndirect(xref, false)
	if err != nil {
		return 0, err
	}
	return xrefPos, nil
}

func encodeInt(w io.ByteWriter, x uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		w.WriteByte(byte(x >> (i * 8)))
	}
}
