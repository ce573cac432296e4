// seehuhn.de/go/pdf - support for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

// Package pdf writes PDF files.
//
// A [Document] collects PDF objects and writes them to an [io.Writer].
// Indirect objects embed [ObjectBase], which holds their object number.
// Numbered objects are queued and written in order by [Document.Flush];
// writing an object may add further objects to the queue.  The document
// catalog, the page tree and other objects which only become complete at
// the end are written by [Document.WriteTrailer], followed by either a
// cross-reference table or a cross-reference stream.
//
//	doc, err := pdf.NewDocument(w, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	page, err := doc.NewPage(rect.Rect{URx: 595, URy: 842})
//	if err != nil {
//		log.Fatal(err)
//	}
//	content := pdf.NewStream(nil, pdf.StreamContent, func(w io.Writer) error {
//		_, err := io.WriteString(w, "0 0 m 100 100 l S")
//		return err
//	})
//	ref, err := doc.Register(content)
//	if err != nil {
//		log.Fatal(err)
//	}
//	page.Contents = append(page.Contents, ref)
//	err = doc.Add(page)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = doc.Close()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The following types implement the native PDF object types.
// All of these implement the [Object] interface:
//
//	Array
//	Bool
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	String
//
// Streams are represented by [Stream].  Stream data is passed through the
// filters of a [FilterList] and, for encrypted documents, through the
// standard security handler.
//
// Subpackages implement functions, shadings, graphics states, actions,
// annotations, outlines, fonts and images on top of this package.
package pdf
