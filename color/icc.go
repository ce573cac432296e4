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


package color

import (
	"errors"
	"fmt"
	"io"
	"math"

	"seehuhn.de/go/icc"

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// ICCBased is the stream holding an ICC color profile.  The same stream can
// be used both for an ICC-based color space and as the destination profile
// of an output intent.
type ICCBased struct {
	pdf.ObjectBase
	pdf.StreamData

	// N is the number of color components.
	N int

	// Ranges gives the range of each color component as [min0, max0, ...].
	Ranges []float64

	// Metadata optionally refers to an XMP metadata stream for the profile.
	Metadata pdf.Reference

	profile []byte
}

// NewICCBased returns a new ICC profile stream.  The number of components
// and their ranges are taken from the profile.
func NewICCBased(profile []byte) (*ICCBased, error) {
	if len(profile) == 0 {
		return nil, errors.New("ICCBased: missing profile")
	}

	p, err := icc.Decode(profile)
	if err != nil {
		return nil, err
	}

	n := p.ColorSpace.NumComponents()
	var ranges []float64
	switch p.ColorSpace {
	case icc.GraySpace:
		ranges = []float64{0, 1}
	case icc.RGBSpace:
		ranges = []float64{0, 1, 0, 1, 0, 1}
	case icc.CMYKSpace:
		ranges = []float64{0, 1, 0, 1, 0, 1, 0, 1}
	case icc.CIELabSpace:
		ranges = []float64{0, 100, -128, 127, -128, 127}
	default:
		return nil, fmt.Errorf("ICCBased: unsupported color space %v", p.ColorSpace)
	}

	res := &ICCBased{
		N:       n,
		Ranges:  ranges,
		profile: profile,
	}
	return res, nil
}

// SRGB returns a new stream holding the built-in sRGB profile (ICC version
// 2, which is accepted by all PDF/A and PDF/X levels).
func SRGB() *ICCBased {
	s, err := NewICCBased(icc.SRGBv2Profile)
	if err != nil {
		panic(err)
	}
	return s
}

// PDF implements the [pdf.Object] interface.
func (s *ICCBased) PDF(w io.Writer) error {
	dict := pdf.Dict{
		"N": pdf.Integer(s.N),
	}
	for i := range s.N {
		if math.Abs(s.Ranges[2*i]) > 1e-6 || math.Abs(s.Ranges[2*i+1]-1) > 1e-6 {
			rng := make(pdf.Array, len(s.Ranges))
			for j, x := range s.Ranges {
				rng[j] = pdf.Number(x)
			}
			dict["Range"] = rng
			break
		}
	}
	if alt := s.alternate(); alt != "" {
		dict["Alternate"] = alt
	}
	if s.Metadata != 0 {
		dict["Metadata"] = s.Metadata
	}
	s.StreamData.Dict = dict
	s.StreamData.SetData(s.profile)
	return s.StreamData.PDF(w)
}

func (s *ICCBased) alternate() pdf.Name {
	switch {
	case len(s.Ranges) == 6 && s.Ranges[1] == 100:
		return ""
	case s.N == 1:
		return pdf.Name(DeviceGray)
	case s.N == 3:
		return pdf.Name(DeviceRGB)
	case s.N == 4:
		return pdf.Name(DeviceCMYK)
	}
	return ""
}

// Embed writes the profile stream to doc, if this has not been done yet,
// and returns the corresponding ICC-based color space.
func (s *ICCBased) Embed(doc *pdf.Document) (Space, error) {
	if !s.HasNumber() {
		err := doc.RequireVersion("ICCBased color spaces", pdf.V1_3)
		if err != nil {
			return nil, err
		}
		_, err = doc.Register(s)
		if err != nil {
			return nil, err
		}
	}
	return iccSpace{stm: s}, nil
}

type iccSpace struct {
	stm *ICCBased
}

func (s iccSpace) PDF(w io.Writer) error {
	return pdf.Array{pdf.Name("ICCBased"), s.stm.Ref()}.PDF(w)
}

func (s iccSpace) Family() pdf.Name {
	return "ICCBased"
}

func (s iccSpace) Channels() int {
	return s.stm.N
}
