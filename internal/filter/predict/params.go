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

// Package predict implements the TIFF and PNG predictors used to prepare
// image data for Flate compression.
//
// The predictors are described in section 7.4.4.4 of ISO 32000-2:2020.
package predict

import (
	"errors"
	"fmt"
)

const maxColumns = 1 << 20

// Params holds the /DecodeParms values which control a predictor.
type Params struct {
	// Predictor selects the algorithm:
	//   1: no prediction
	//   2: TIFF horizontal differencing
	//  10: PNG None on every row
	//  11: PNG Sub on every row
	//  12: PNG Up on every row
	//  13: PNG Average on every row
	//  14: PNG Paeth on every row
	//  15: PNG, with the algorithm chosen separately for each row
	Predictor int

	// Colors is the number of color components per pixel.
	Colors int

	// BitsPerComponent is 1, 2, 4, 8 or 16.
	BitsPerComponent int

	// Columns is the number of pixels per row.
	Columns int
}

// Validate checks that the parameters describe a valid predictor.
func (p *Params) Validate() error {
	switch p.Predictor {
	case 1:
		return nil
	case 2:
		if p.Colors > 60 {
			return errors.New("at most 60 colors are allowed for the TIFF predictor")
		}
	case 10, 11, 12, 13, 14, 15:
		if p.Colors > 256 {
			return errors.New("at most 256 colors are allowed for PNG predictors")
		}
	default:
		return fmt.Errorf("invalid predictor %d", p.Predictor)
	}

	if p.Colors < 1 {
		return errors.New("Colors must be at least 1")
	}
	switch p.BitsPerComponent {
	case 1, 2, 4, 8, 16:
	default:
		return fmt.Errorf("invalid BitsPerComponent %d", p.BitsPerComponent)
	}
	maxCols := min(maxColumns, (1<<31-1)/p.bitsPerPixel())
	if p.Columns < 1 || p.Columns > maxCols {
		return fmt.Errorf("invalid Columns %d", p.Columns)
	}
	return nil
}

func (p *Params) bitsPerPixel() int {
	return p.Colors * p.BitsPerComponent
}

// bytesPerRow returns the length of an unencoded row.
func (p *Params) bytesPerRow() int {
	return (p.bitsPerPixel()*p.Columns + 7) / 8
}

// bytesPerPixel returns the distance used by the PNG predictors to find
// the "left" byte.
func (p *Params) bytesPerPixel() int {
	return (p.bitsPerPixel() + 7) / 8
}
