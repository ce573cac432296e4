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

// Profile is a conformance profile, like PDF/A-1b.  While a profile is
// active, operations which would make the output non-conforming fail with
// a [*ConformanceError].
type Profile int

// These are the supported conformance profiles.
const (
	ProfileNone Profile = iota
	ProfilePDFA1b
	ProfilePDFA2b
	ProfilePDFX3
	ProfilePDFUA1
)

func (p Profile) String() string {
	switch p {
	case ProfileNone:
		return "no profile"
	case ProfilePDFA1b:
		return "PDF/A-1b"
	case ProfilePDFA2b:
		return "PDF/A-2b"
	case ProfilePDFX3:
		return "PDF/X-3"
	case ProfilePDFUA1:
		return "PDF/UA-1"
	default:
		return "unknown profile"
	}
}

// IsPDFA reports whether p is one of the PDF/A profiles.
func (p Profile) IsPDFA() bool {
	return p == ProfilePDFA1b || p == ProfilePDFA2b
}

// IsPDFX reports whether p is one of the PDF/X profiles.
func (p Profile) IsPDFX() bool {
	return p == ProfilePDFX3
}

// maxVersion returns the highest PDF version the profile allows,
// or 0 if there is no limit.
func (p Profile) maxVersion() Version {
	switch p {
	case ProfilePDFA1b, ProfilePDFX3:
		return V1_4
	case ProfilePDFA2b, ProfilePDFUA1:
		return V1_7
	default:
		return 0
	}
}

func (p Profile) violation(op string) error {
	return &ConformanceError{Profile: p, Operation: op}
}

// VerifyEncryptionAllowed checks whether encryption may be used.
func (p Profile) VerifyEncryptionAllowed() error {
	if p.IsPDFA() || p.IsPDFX() {
		return p.violation("encryption")
	}
	return nil
}

// VerifyAnnotAllowed checks whether annotations may be used.
func (p Profile) VerifyAnnotAllowed() error {
	if p.IsPDFX() {
		return p.violation("annotation")
	}
	return nil
}

// VerifyActionAllowed checks whether an action of the given type
// (e.g. "Launch") may be used.
func (p Profile) VerifyActionAllowed(action Name) error {
	if p.IsPDFX() {
		return p.violation(string(action) + " action")
	}
	if p.IsPDFA() && action == "Launch" {
		return p.violation("Launch action")
	}
	return nil
}

// VerifyTransparencyAllowed checks whether transparency may be used.
// The argument describes the offending construct, for the error message.
func (p Profile) VerifyTransparencyAllowed(context string) error {
	if p == ProfilePDFA1b || p == ProfilePDFX3 {
		return p.violation("transparency (" + context + ")")
	}
	return nil
}

// VerifyEmbeddedFilesAllowed checks whether embedded files may be used.
func (p Profile) VerifyEmbeddedFilesAllowed() error {
	if p == ProfilePDFA1b || p == ProfilePDFA2b {
		return p.violation("embedded file")
	}
	return nil
}

// verifyTrailer checks the document-level requirements of the profile.
func (p Profile) verifyTrailer(d *Document) error {
	cat := d.catalog
	if (p.IsPDFA() || p.IsPDFX()) && len(cat.OutputIntents) == 0 {
		return p.violation("omitting the output intent")
	}
	if (p.IsPDFA() || p == ProfilePDFUA1) && cat.Metadata == 0 {
		return p.violation("omitting XMP metadata")
	}
	if p == ProfilePDFUA1 && !d.opt.Accessibility {
		return p.violation("omitting the structure tree")
	}
	return nil
}
