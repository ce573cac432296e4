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


// Package destination implements PDF destinations.
//
// A destination defines a particular view of a document: the page to
// display, the location of the window on that page and the magnification.
// The explicit destination types are [XYZ], [Fit], [FitH], [FitV], [FitR],
// [FitB], [FitBH] and [FitBV].  A [Named] destination refers by name to an
// explicit destination registered with [AddNamed].
//
// Some destination types have optional coordinates.  Use [Unset] to keep
// the current value:
//
//	dest := &destination.XYZ{
//		Page: page.Ref(),
//		Left: 100,
//		Top:  destination.Unset,
//		Zoom: destination.Unset,
//	}
//
// Explicit destinations which are used by many links can be written once,
// as an indirect object, using [Share].
package destination
