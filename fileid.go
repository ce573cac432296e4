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
	"crypto/md5"
	"crypto/rand"
	"io"
	"time"
)

// getFileID returns the file identifier of the document.  Once an
// identifier has been chosen, the same value is returned by all later
// calls.  If random is set, or if [Options.RandomFileID] is set, a random
// identifier is used.  Otherwise the identifier is a digest of the
// document information.  Both components of the identifier are equal.
func (d *Document) getFileID(random bool) ([2][]byte, error) {
	if d.fileID[0] != nil {
		return d.fileID, nil
	}
	if d.opt.FileID[0] != nil {
		d.fileID = d.opt.FileID
		return d.fileID, nil
	}

	id := make([]byte, 16)
	if random || d.opt.RandomFileID {
		_, err := io.ReadFull(rand.Reader, id)
		if err != nil {
			return d.fileID, err
		}
	} else {
		h := md5.New()
		info := d.info
		creation := info.CreationDate
		if creation.IsZero() {
			creation = time.Now()
		}
		for _, s := range []string{
			creation.Format(time.RFC3339Nano),
			info.Producer,
			info.Creator,
			info.Title,
			info.Author,
			info.Subject,
			info.Keywords,
		} {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
		id = h.Sum(id[:0])
	}
	d.fileID = [2][]byte{id, id}
	return d.fileID, nil
}
