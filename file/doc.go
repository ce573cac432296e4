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

// Package file implements PDF file specifications and embedded file
// streams.
//
// A [Specification] either refers to an external file by name, or carries
// the file data in an [EmbeddedFile] stream.  Specifications are shared
// through the document, so that equal specifications are only written
// once.  [Attach] additionally lists an embedded file in the
// /EmbeddedFiles name tree of the document, where viewers show it as an
// attachment.
package file
