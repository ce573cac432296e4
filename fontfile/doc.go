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

// Package fontfile implements simple font dictionaries with embedded font
// programs.
//
// TrueType fonts are embedded as /FontFile2 streams, CFF-based OpenType
// fonts as /FontFile3 streams with subtype /OpenType, and Type 1 fonts as
// /FontFile streams.  The /Length1 and /Length2 entries of the font
// program streams are only known once the program has been written, and
// are filled in through [pdf.Placeholder] values.
//
// Fonts are shared through the document by their key, and receive
// resource names like "F1".
package fontfile
