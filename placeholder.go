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
)

// A Placeholder is a space reserved in a PDF file that can later be filled
// with a value.  One common use case is to store the length of compressed
// content in a PDF stream dictionary.  To create Placeholder objects,
// use the [NewPlaceholder] function.
type Placeholder struct {
	value []byte
	size  int

	doc *Document
	pos []int64
	num *numberObject
}

// NewPlaceholder creates a new placeholder for a value which is not yet known.
// The argument size must be an upper bound to the length of the replacement
// text.  Once the value becomes known, it can be filled in using the
// [Placeholder.Set] method.
func NewPlaceholder(doc *Document, size int) *Placeholder {
	return &Placeholder{
		size: size,
		doc:  doc,
	}
}

// PDF implements the [Object] interface.
func (x *Placeholder) PDF(w io.Writer) error {
	// method 1: If the value is already known, we can just write it to the
	// file.
	if x.value != nil {
		_, err := w.Write(x.value)
		return err
	}

	// method 2: If we can seek, write whitespace for now and fill in
	// the actual value later.
	if pw, ok := w.(*posWriter); ok && pw == x.doc.w {
		if _, ok := x.doc.out.seeker(); ok {
			x.pos = append(x.pos, pw.pos)

			buf := bytes.Repeat([]byte{' '}, x.size)
			_, err := w.Write(buf)
			return err
		}
	}

	// method 3: If all else fails, use an indirect reference.
	if x.num == nil {
		x.num = &numberObject{}
		_, err := x.doc.AssignNumber(x.num)
		if err != nil {
			return err
		}
	}
	buf := &bytes.Buffer{}
	err := x.num.ref.PDF(buf)
	if err != nil {
		return err
	}
	x.value = buf.Bytes()
	_, err = w.Write(x.value)
	return err
}

// Set fills in the value of the placeholder object.  This should be called
// as soon as possible after the value becomes known.
func (x *Placeholder) Set(val Object) error {
	if x.num != nil {
		if x.num.val != nil {
			return errors.New("Placeholder: value already set")
		}
		x.num.val = val
		err := x.doc.Add(x.num)
		if err != nil {
			return fmt.Errorf("Placeholder.Set: %w", err)
		}
		return nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, x.size))
	err := val.PDF(buf)
	if err != nil {
		return err
	}
	if buf.Len() > x.size {
		return errors.New("Placeholder: replacement text too long")
	}
	x.value = buf.Bytes()

	if len(x.pos) == 0 {
		return nil
	}

	return x.doc.patch(x.pos, x.value)
}
