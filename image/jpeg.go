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

package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// EmbedJPEG embeds JPEG data as an image XObject.  The data is copied to
// the PDF file unchanged, tagged with the /DCTDecode filter.
func EmbedJPEG(doc *pdf.Document, key string, data []byte) (pdf.Reference, error) {
	if ref, ok := doc.Image(key); ok {
		return ref, nil
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("JPEG image %q: %w", key, err)
	}
	dict := pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(cfg.Width),
		"Height":           pdf.Integer(cfg.Height),
		"BitsPerComponent": pdf.Integer(8),
	}
	switch cfg.ColorModel {
	case color.GrayModel:
		dict["ColorSpace"] = pdf.Name("DeviceGray")
	case color.YCbCrModel:
		dict["ColorSpace"] = pdf.Name("DeviceRGB")
	case color.CMYKModel:
		// Adobe applications store CMYK JPEG data inverted.
		dict["ColorSpace"] = pdf.Name("DeviceCMYK")
		dict["Decode"] = pdf.Array{
			pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
			pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
		}
	default:
		return 0, fmt.Errorf("JPEG image %q: unsupported color model", key)
	}

	stm := &pdf.Stream{
		StreamData: pdf.StreamData{
			Dict: dict,
			Type: pdf.StreamJPEG,
		},
	}
	stm.SetData(data)
	err = stm.Filters.AddFilter(pdf.FilterDCT{})
	if err != nil {
		return 0, err
	}
	return doc.AddImage(key, stm)
}

// EncodeJPEG compresses src using lossy JPEG compression and embeds the
// result.  Transparency is discarded.
func EncodeJPEG(doc *pdf.Document, key string, src image.Image, opts *jpeg.Options) (pdf.Reference, error) {
	if ref, ok := doc.Image(key); ok {
		return ref, nil
	}
	if src.Bounds().Empty() {
		return 0, errEmpty
	}

	buf := &bytes.Buffer{}
	err := jpeg.Encode(buf, src, opts)
	if err != nil {
		return 0, err
	}
	return EmbedJPEG(doc, key, buf.Bytes())
}
