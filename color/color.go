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


// Package color implements PDF color spaces and colors.
//
// The device color spaces are represented by [DeviceGray], [DeviceRGB] and
// [DeviceCMYK].  ICC-based color spaces are written as a stream holding the
// ICC profile, see [NewICCBased].  The same profiles are used for the output
// intents required by PDF/A and PDF/X.
package color

import (
	"fmt"
	"io"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
	"github.com/apache/xmlgraphics-fop-sub006/internal/float"
)

// Space is a PDF color space.
type Space interface {
	pdf.Object

	// Family returns the color space family, e.g. /DeviceRGB or /ICCBased.
	Family() pdf.Name

	// Channels returns the number of color components.
	Channels() int
}

// Device is one of the device color spaces.
type Device pdf.Name

// The device color spaces.
const (
	DeviceGray Device = "DeviceGray"
	DeviceRGB  Device = "DeviceRGB"
	DeviceCMYK Device = "DeviceCMYK"
)

// PDF implements the [pdf.Object] interface.
func (s Device) PDF(w io.Writer) error {
	return pdf.Name(s).PDF(w)
}

// Family implements the [Space] interface.
func (s Device) Family() pdf.Name {
	return pdf.Name(s)
}

// Channels implements the [Space] interface.
func (s Device) Channels() int {
	switch s {
	case DeviceGray:
		return 1
	case DeviceCMYK:
		return 4
	default:
		return 3
	}
}

// Color is a color which can be selected in a content stream.
type Color interface {
	Space() Space
	SetStroke(w io.Writer) error
	SetFill(w io.Writer) error
}

type gray float64

// Gray returns a color in the /DeviceGray color space.
// The value must be in the range from 0 (black) to 1 (white).
func Gray(g float64) Color {
	return gray(g)
}

func (c gray) Space() Space {
	return DeviceGray
}

func (c gray) SetStroke(w io.Writer) error {
	_, err := fmt.Fprintln(w, float.Format(float64(c), 3), "G")
	return err
}

func (c gray) SetFill(w io.Writer) error {
	_, err := fmt.Fprintln(w, float.Format(float64(c), 3), "g")
	return err
}

// Default is black in the /DeviceGray color space.
var Default = gray(0)

type rgb struct {
	R, G, B float64
}

// RGB returns a color in the /DeviceRGB color space.
// Each component must be in the range [0, 1].
func RGB(r, g, b float64) Color {
	return &rgb{r, g, b}
}

func (c *rgb) Space() Space {
	return DeviceRGB
}

func (c *rgb) SetStroke(w io.Writer) error {
	return writeOp(w, "RG", c.R, c.G, c.B)
}

func (c *rgb) SetFill(w io.Writer) error {
	return writeOp(w, "rg", c.R, c.G, c.B)
}

type cmyk struct {
	C, M, Y, K float64
}

// CMYK returns a color in the /DeviceCMYK color space.
func CMYK(c, m, y, k float64) Color {
	return &cmyk{c, m, y, k}
}

func (c *cmyk) Space() Space {
	return DeviceCMYK
}

func (c *cmyk) SetStroke(w io.Writer) error {
	return writeOp(w, "K", c.C, c.M, c.Y, c.K)
}

func (c *cmyk) SetFill(w io.Writer) error {
	return writeOp(w, "k", c.C, c.M, c.Y, c.K)
}

func writeOp(w io.Writer, op string, values ...float64) error {
	args := make([]any, 0, len(values)+1)
	for _, v := range values {
		args = append(args, float.Format(v, 3))
	}
	args = append(args, op)
	_, err := fmt.Fprintln(w, args...)
	return err
}
