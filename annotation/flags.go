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

package annotation

// Flags are the annotation flags of the /F entry.
type Flags uint16

const (
	// FlagInvisible hides annotations of unknown type.
	FlagInvisible Flags = 1 << 0

	// FlagHidden (PDF 1.2) disables display and interaction.
	FlagHidden Flags = 1 << 1

	// FlagPrint (PDF 1.2) prints the annotation when the page is printed.
	FlagPrint Flags = 1 << 2

	// FlagNoZoom (PDF 1.3) keeps the appearance from being scaled.
	FlagNoZoom Flags = 1 << 3

	// FlagNoRotate (PDF 1.3) keeps the appearance from being rotated.
	FlagNoRotate Flags = 1 << 4

	// FlagNoView (PDF 1.3) hides the annotation on screen.
	FlagNoView Flags = 1 << 5

	// FlagReadOnly (PDF 1.3) disables interaction.
	FlagReadOnly Flags = 1 << 6

	// FlagLocked (PDF 1.4) prevents deletion and modification.
	FlagLocked Flags = 1 << 7
)

// forbiddenPDFA are the flags which must not be set in PDF/A documents.
const forbiddenPDFA = FlagInvisible | FlagHidden | FlagNoView
