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

	pdf "github.com/apache/xmlgraphics-fop-sub006"
)

// Output intent subtypes.
const (
	IntentPDFA pdf.Name = "GTS_PDFA1"
	IntentPDFX pdf.Name = "GTS_PDFX"
)

// OutputIntent describes the color characteristics of the output device
// for which the document is intended.
//
// Output intents are documented in section 14.11.5 of ISO 32000-2:2020.
type OutputIntent struct {
	// Subtype is the output intent subtype.  If this is empty, the
	// subtype is chosen according to the conformance profile of the
	// document.
	Subtype pdf.Name

	OutputConditionIdentifier string
	OutputCondition           string
	RegistryName              string
	Info                      string

	// Profile is the destination profile.  This is required except for
	// PDF/X, where a registered OutputConditionIdentifier may be used
	// instead.
	Profile *ICCBased
}

// AddOutputIntent adds an output intent to the document catalog.  The
// destination profile is written to the document, unless this has already
// been done.
func AddOutputIntent(doc *pdf.Document, oi *OutputIntent) error {
	subtype := oi.Subtype
	if subtype == "" {
		if doc.Profile().IsPDFX() {
			subtype = IntentPDFX
		} else {
			subtype = IntentPDFA
		}
	}
	if oi.Profile == nil && subtype != IntentPDFX {
		return errors.New("output intent: missing destination profile")
	}
	if oi.OutputConditionIdentifier == "" {
		return errors.New("output intent: missing output condition identifier")
	}

	dict := pdf.Dict{
		"Type":                      pdf.Name("OutputIntent"),
		"S":                         subtype,
		"OutputConditionIdentifier": pdf.TextString(oi.OutputConditionIdentifier),
	}
	if oi.OutputCondition != "" {
		dict["OutputCondition"] = pdf.TextString(oi.OutputCondition)
	}
	if oi.RegistryName != "" {
		dict["RegistryName"] = pdf.String(oi.RegistryName)
	}
	if oi.Info != "" {
		dict["Info"] = pdf.TextString(oi.Info)
	}
	if oi.Profile != nil {
		_, err := oi.Profile.Embed(doc)
		if err != nil {
			return err
		}
		dict["DestOutputProfile"] = oi.Profile.Ref()
	}

	cat := doc.Catalog()
	cat.OutputIntents = append(cat.OutputIntents, dict)
	return nil
}

// AddSRGBOutputIntent adds an output intent using the built-in sRGB
// profile.  This is the usual choice for PDF/A documents.
func AddSRGBOutputIntent(doc *pdf.Document) (*ICCBased, error) {
	profile := SRGB()
	err := AddOutputIntent(doc, &OutputIntent{
		OutputConditionIdentifier: "sRGB IEC61966-2.1",
		RegistryName:              "http://www.color.org",
		Info:                      "sRGB IEC61966-2.1",
		Profile:                   profile,
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
