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
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

// maxObjStmSize is the maximal number of objects stored in one object
// stream.
const maxObjStmSize = 100

// objStmManager packs objects into object streams.
type objStmManager struct {
	doc *Document
	cur *objectStream
}

type objectStream struct {
	stm     *Stream
	numbers []uint32
	offsets []int
	body    bytes.Buffer
}

// add serializes obj into the current object stream.  A new object stream
// is started if needed, and full streams are written to the output.
func (m *objStmManager) add(obj Indirect) error {
	d := m.doc
	ref := obj.base().ref
	if ref == 0 {
		return &UnassignedReferenceError{What: fmt.Sprintf("%T", obj)}
	}
	if obj.base().owner != d.serial {
		return &IdentityError{Ref: ref, Reason: "belongs to a different document"}
	}
	if d.xref[ref.Number()].written {
		return &IdentityError{Ref: ref, Reason: "already written"}
	}

	if m.cur == nil {
		stm := &Stream{}
		_, err := d.AssignNumber(stm)
		if err != nil {
			return err
		}
		m.cur = &objectStream{stm: stm}
	}
	cur := m.cur

	// Objects in object streams are not encrypted separately, since the
	// containing stream is encrypted as a whole.
	offset := cur.body.Len()
	pw := &posWriter{w: &cur.body, doc: d, ref: ref}
	err := obj.PDF(pw)
	if err != nil {
		cur.body.Truncate(offset)
		return err
	}
	cur.body.WriteByte('\n')

	// d.xref may have been reallocated above.
	entry := &d.xref[ref.Number()]
	d.bodyStarted = true
	entry.written = true
	entry.stream = cur.stm.ref.Number()
	entry.index = len(cur.numbers)
	cur.numbers = append(cur.numbers, ref.Number())
	cur.offsets = append(cur.offsets, offset)

	if len(cur.numbers) >= maxObjStmSize {
		return m.flush()
	}
	return nil
}

// flush writes the current object stream, if any, to the output.
func (m *objStmManager) flush() error {
	cur := m.cur
	if cur == nil {
		return nil
	}
	m.cur = nil

	var header []byte
	for i, num := range cur.numbers {
		if i > 0 {
			header = append(header, ' ')
		}
		header = strconv.AppendUint(header, uint64(num), 10)
		header = append(header, ' ')
		header = strconv.AppendInt(header, int64(cur.offsets[i]), 10)
	}
	header = append(header, '\n')

	stm := cur.stm
	stm.Dict = Dict{
		"Type":  Name("ObjStm"),
		"N":     Integer(len(cur.numbers)),
		"First": Integer(len(header)),
	}
	stm.Precompute = true
	body := cur.body.Bytes()
	stm.Produce = func(w io.Writer) error {
		_, err := w.Write(header)
		if err != nil {
			return err
		}
		_, err = w.Write(body)
		return err
	}
	stm.SizeHint = len(header) + len(body)

	m.doc.log.Debug("object stream flushed",
		slog.String("ref", stm.ref.String()),
		slog.Int("objects", len(cur.numbers)))
	return m.doc.writeIndirect(stm, true)
}
