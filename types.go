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
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

// Object represents an object in a PDF file.  The basic types of PDF objects
// implement this interface: [Array], [Bool], [Dict], [Integer], [Name],
// [Real], [Reference], and [String].  Indirect objects, which are written as
// separate "n g obj" units, additionally implement [Indirect].
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// PDF implements the [Object] interface.
func (x Bool) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatBool(bool(x)))
	return err
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the [Object] interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := w.Write(strconv.AppendInt(nil, int64(x), 10))
	return err
}

// Real represents a real number in a PDF file.  Reals are always written
// with a decimal point, so that readers do not mistake them for integers.
type Real float64

// PDF implements the [Object] interface.
func (x Real) PDF(w io.Writer) error {
	buf := strconv.AppendFloat(nil, float64(x), 'f', -1, 64)
	if bytes.IndexByte(buf, '.') < 0 {
		buf = append(buf, '.')
	}
	_, err := w.Write(buf)
	return err
}

// Number returns x as an [Integer] if it has no fractional part,
// and as a [Real] otherwise.
func Number(x float64) Object {
	if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
		return Integer(x)
	}
	return Real(x)
}

// String represents a raw string in a PDF file.  The character set encoding,
// if any, is determined by the context.
//
// When a String is written as part of an indirect object in an encrypted
// document, the string is encrypted with the key of that object.
type String []byte

// PDF implements the [Object] interface.
func (x String) PDF(w io.Writer) error {
	data := []byte(x)
	if pw, ok := w.(*posWriter); ok && pw.enc != nil {
		enc, err := pw.enc.EncryptBytes(pw.ref, bytes.Clone(data))
		if err != nil {
			return err
		}
		data = enc
	}

	var out []byte
	escapeParens := !parensBalanced(data)
	special := 0
	for _, c := range data {
		if needsEscape(c, escapeParens) {
			special++
		}
	}
	if 3*special <= len(data) {
		out = appendLiteral(out, data, escapeParens)
	} else {
		out = fmt.Appendf(out, "<%X>", data)
	}
	_, err := w.Write(out)
	return err
}

// parensBalanced reports whether the parentheses in data can be written
// without escaping them.
func parensBalanced(data []byte) bool {
	level := 0
	for _, c := range data {
		switch c {
		case '(':
			level++
		case ')':
			level--
			if level < 0 {
				return false
			}
		}
	}
	return level == 0
}

func needsEscape(c byte, escapeParens bool) bool {
	return c < 32 || c >= 127 || c == '\\' || escapeParens && (c == '(' || c == ')')
}

var literalEscapes = map[byte]string{
	'\r': `\r`,
	'\n': `\n`,
	'\t': `\t`,
	'\b': `\b`,
	'\f': `\f`,
	'(':  `\(`,
	')':  `\)`,
	'\\': `\\`,
}

func appendLiteral(out, data []byte, escapeParens bool) []byte {
	out = append(out, '(')
	for _, c := range data {
		if !needsEscape(c, escapeParens) {
			out = append(out, c)
		} else if esc, ok := literalEscapes[c]; ok {
			out = append(out, esc...)
		} else {
			out = fmt.Appendf(out, `\%03o`, c)
		}
	}
	return append(out, ')')
}

// Date creates a PDF String object encoding the given date and time.
func Date(t time.Time) String {
	s := t.Format("D:20060102150405-0700")
	k := len(s) - 2
	return String(s[:k] + "'" + s[k:] + "'")
}

// Name represents a name object in a PDF file.
type Name string

// PDF implements the [Object] interface.
func (x Name) PDF(w io.Writer) error {
	out := make([]byte, 1, len(x)+1)
	out[0] = '/'
	for i := 0; i < len(x); i++ {
		c := x[i]
		if c < 0x21 || c > 0x7e || c == '#' || strings.IndexByte(delimiters, c) >= 0 {
			out = fmt.Appendf(out, "#%02x", c)
		} else {
			out = append(out, c)
		}
	}
	_, err := w.Write(out)
	return err
}

const delimiters = "()<>[]{}/%"

// Array represent an array of objects in a PDF file.
// A nil element is written as "null".
type Array []Object

func (x Array) String() string {
	return fmt.Sprintf("<Array, %d elements>", len(x))
}

// PDF implements the [Object] interface.
func (x Array) PDF(w io.Writer) error {
	sep := "["
	for _, val := range x {
		_, err := io.WriteString(w, sep)
		if err != nil {
			return err
		}
		sep = " "
		err = writeObject(w, val)
		if err != nil {
			return err
		}
	}
	if len(x) == 0 {
		_, err := io.WriteString(w, "[]")
		return err
	}
	_, err := io.WriteString(w, "]")
	return err
}

// Dict represent a Dictionary object in a PDF file.
// Keys are written in sorted order, entries with nil values are omitted.
type Dict map[Name]Object

func (x Dict) String() string {
	kind := "Dict"
	if tp, ok := x["Type"].(Name); ok {
		kind = string(tp) + " Dict"
	}
	if len(x) == 1 {
		return "<" + kind + ", 1 entry>"
	}
	return fmt.Sprintf("<%s, %d entries>", kind, len(x))
}

// PDF implements the [Object] interface.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := io.WriteString(w, "null")
		return err
	}

	keys := make([]Name, 0, len(x))
	for key, val := range x {
		if val != nil {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	_, err := io.WriteString(w, "<<")
	if err != nil {
		return err
	}
	for _, key := range keys {
		_, err = io.WriteString(w, "\n")
		if err != nil {
			return err
		}
		err = key.PDF(w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, " ")
		if err != nil {
			return err
		}
		err = x[key].PDF(w)
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n>>")
	return err
}

// Reference represents a reference to an indirect object in a PDF file.
// The lower 32 bits represent the object number, the next 16 bits the
// generation number.  The zero Reference stands for an object which has not
// been assigned a number; writing it is an error.
type Reference uint64

// NewReference creates a new Reference object.
func NewReference(number uint32, generation uint16) Reference {
	return Reference(uint64(number) | uint64(generation)<<32)
}

// Number returns the object number of the reference.
func (x Reference) Number() uint32 {
	return uint32(x)
}

// Generation returns the generation number of the reference.
func (x Reference) Generation() uint16 {
	return uint16(x >> 32)
}

// String returns a short description like "obj_12", for use in error
// messages and logs.
func (x Reference) String() string {
	if gen := x.Generation(); gen > 0 {
		return fmt.Sprintf("obj_%d@%d", x.Number(), gen)
	}
	return "obj_" + strconv.FormatUint(uint64(x.Number()), 10)
}

// PDF implements the [Object] interface.
func (x Reference) PDF(w io.Writer) error {
	if x.Number() == 0 {
		return &UnassignedReferenceError{}
	}
	if x>>48 != 0 {
		return fmt.Errorf("invalid reference: 0x%016x", uint64(x))
	}
	_, err := fmt.Fprintf(w, "%d %d R", x.Number(), x.Generation())
	return err
}

func writeObject(w io.Writer, obj Object) error {
	if obj == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return obj.PDF(w)
}

// Format formats a PDF object as a string, in the same way as it would be
// written to a PDF file.
func Format(obj Object) string {
	buf := &bytes.Buffer{}
	err := writeObject(buf, obj)
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return buf.String()
}
