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

// Package image embeds raster images into PDF files as image XObjects.
//
// Images are registered with the document under a caller-chosen key.  If an
// image with the same key is embedded again while the document still
// remembers it, the existing XObject is reused.
package image

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Options controls how raster images are embedded.
type Options struct {
	// MaxSize, if positive, limits the width and height of the embedded
	// image.  Larger images are scaled down, keeping the aspect ratio.
	MaxSize int

	// Interpolate sets the /Interpolate flag of the image dictionary.
	Interpolate bool
}

var errEmpty = errors.New("empty image")

// Embed writes src as an image XObject and returns its reference.
// Grayscale images use /DeviceGray, all other images use /DeviceRGB.
// Images with transparent pixels get a soft mask, which needs PDF 1.4.
func Embed(doc *pdf.Document, key string, src image.Image, opt *Options) (pdf.Reference, error) {
	if ref, ok := doc.Image(key); ok {
		return ref, nil
	}
	if opt == nil {
		opt = &Options{}
	}
	if src.Bounds().Empty() {
		return 0, errEmpty
	}

	img := normalize(src, opt.MaxSize)
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	var stm *pdf.Stream
	var alpha []byte
	var err error
	switch img := img.(type) {
	case *image.Gray:
		stm, err = newImageStream(doc, width, height, 1, "DeviceGray", img.Pix)
	case *image.NRGBA:
		samples := make([]byte, 0, 3*width*height)
		opaque := true
		for i := 0; i < len(img.Pix); i += 4 {
			samples = append(samples, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			if img.Pix[i+3] != 0xFF {
				opaque = false
			}
		}
		if !opaque {
			alpha = make([]byte, 0, width*height)
			for i := 3; i < len(img.Pix); i += 4 {
				alpha = append(alpha, img.Pix[i])
			}
		}
		stm, err = newImageStream(doc, width, height, 3, "DeviceRGB", samples)
	}
	if err != nil {
		return 0, err
	}
	if opt.Interpolate {
		stm.Dict["Interpolate"] = pdf.Bool(true)
	}

	if alpha != nil {
		err = doc.Profile().VerifyTransparencyAllowed("soft mask")
		if err != nil {
			return 0, err
		}
		err = doc.RequireVersion("soft masks", pdf.V1_4)
		if err != nil {
			return 0, err
		}
		mask, err := newImageStream(doc, width, height, 1, "DeviceGray", alpha)
		if err != nil {
			return 0, err
		}
		maskRef, err := doc.Register(mask)
		if err != nil {
			return 0, err
		}
		stm.Dict["SMask"] = maskRef
	}

	return doc.AddImage(key, stm)
}

// normalize converts src into an *image.Gray or *image.NRGBA with origin
// (0, 0), scaling it down to at most maxSize pixels in each direction.
func normalize(src image.Image, maxSize int) draw.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
	}
	r := image.Rect(0, 0, w, h)

	var dst draw.Image
	if src.ColorModel() == color.GrayModel {
		dst = image.NewGray(r)
	} else {
		dst = image.NewNRGBA(r)
	}
	if r.Size() == b.Size() {
		draw.Draw(dst, r, src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, r, src, b, draw.Src, nil)
	}
	return dst
}

func newImageStream(doc *pdf.Document, width, height, colors int, cs pdf.Name, samples []byte) (*pdf.Stream, error) {
	stm := &pdf.Stream{
		StreamData: pdf.StreamData{
			Dict: pdf.Dict{
				"Type":             pdf.Name("XObject"),
				"Subtype":          pdf.Name("Image"),
				"Width":            pdf.Integer(width),
				"Height":           pdf.Integer(height),
				"ColorSpace":       cs,
				"BitsPerComponent": pdf.Integer(8),
			},
			Type: pdf.StreamImage,
		},
	}
	stm.SetData(samples)

	// Unless the caller configured filters for images, use the PNG "up"
	// predictors, which work well for most raster data.
	opt := doc.Options()
	if _, configured := opt.Filters[pdf.StreamImage]; !configured && !opt.DisableCompression {
		err := stm.Filters.AddFilter(&pdf.FilterFlate{
			Predictor: 15,
			Colors:    colors,
			Columns:   width,
		})
		if err != nil {
			return nil, err
		}
	}
	return stm, nil
}
