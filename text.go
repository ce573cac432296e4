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
	"golang.org/x/text/encoding/unicode"
)

// TextString creates a String object using the "text string" encoding,
// i.e. using either PDFDocEncoding or UTF-16BE encoding (with a BOM).
func TextString(s string) String {
	buf, ok := pdfDocEncode(s)
	if ok {
		return buf
	}
	return utf16Encode(s)
}

var utf16BOM = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

func utf16Encode(s string) String {
	buf, err := utf16BOM.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// The encoder replaces invalid UTF-8 by U+FFFD, so this
		// cannot happen for string input.
		panic(err)
	}
	return String(buf)
}

// pdfDocEncode converts s to PDFDocEncoding.  The second return value
// is false if s contains characters which cannot be represented.
func pdfDocEncode(s string) (String, bool) {
	res := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			res = append(res, byte(r))
		case r >= 0x20 && r < 0x7F:
			res = append(res, byte(r))
		case r >= 0xA1 && r <= 0xFF && r != 0xAD:
			res = append(res, byte(r))
		default:
			c, ok := pdfDocSpecial[r]
			if !ok {
				return nil, false
			}
			res = append(res, c)
		}
	}
	return String(res), true
}

var pdfDocSpecial = map[rune]byte{
	'˘': 0x18,
	'ˇ': 0x19,
	'ˆ': 0x1A,
	'˙': 0x1B,
	'˝': 0x1C,
	'˛': 0x1D,
	'˚': 0x1E,
	'˜': 0x1F,
	'•': 0x80,
	'†': 0x81,
	'‡': 0x82,
	'…': 0x83,
	'—': 0x84,
	'–': 0x85,
	'ƒ': 0x86,
	'⁄': 0x87,
	'‹': 0x88,
	'›': 0x89,
	'−': 0x8A,
	'‰': 0x8B,
	'„': 0x8C,
	'“': 0x8D,
	'”': 0x8E,
	'‘': 0x8F,
	'’': 0x90,
	'‚': 0x91,
	'™': 0x92,
	'ﬁ': 0x93,
	'ﬂ': 0x94,
	'Ł': 0x95,
	'Œ': 0x96,
	'Š': 0x97,
	'Ÿ': 0x98,
	'Ž': 0x99,
	'ı': 0x9A,
	'ł': 0x9B,
	'œ': 0x9C,
	'š': 0x9D,
	'ž': 0x9E,
	'€': 0xA0,
}
