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

import "strconv"

// Version represents a version of PDF standard.
type Version int

// PDF versions supported by this library.
const (
	_ Version = iota
	V1_0
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

// ParseVersion parses a PDF version string.
func ParseVersion(verString string) (Version, error) {
	switch verString {
	case "1.0":
		return V1_0, nil
	case "1.1":
		return V1_1, nil
	case "1.2":
		return V1_2, nil
	case "1.3":
		return V1_3, nil
	case "1.4":
		return V1_4, nil
	case "1.5":
		return V1_5, nil
	case "1.6":
		return V1_6, nil
	case "1.7":
		return V1_7, nil
	case "2.0":
		return V2_0, nil
	}
	return 0, errVersion
}

// ToString returns the string representation of ver, e.g. "1.7".
// If ver does not correspond to a supported PDF version, an error is
// returned.
func (ver Version) ToString() (string, error) {
	if ver >= V1_0 && ver <= V1_7 {
		return "1." + string([]byte{byte(ver - V1_0 + '0')}), nil
	}
	if ver == V2_0 {
		return "2.0", nil
	}
	return "", errVersion
}

func (ver Version) String() string {
	versionString, err := ver.ToString()
	if err != nil {
		versionString = "pdf.Version(" + strconv.Itoa(int(ver)) + ")"
	}
	return versionString
}

// versionController keeps track of the PDF version of a document.
//
// A fixed controller refuses all requests for a version higher than the
// configured one.  A dynamic controller upgrades on request.  Neither
// controller ever lowers the version, and no change is possible once the
// controller is locked.
type versionController struct {
	header Version // version written in the file header
	cur    Version
	limit  Version // upper bound imposed by a profile, 0 for none
	fixed  bool
	locked bool
}

func newVersionController(v Version, fixed bool) *versionController {
	return &versionController{header: v, cur: v, fixed: fixed}
}

// Require makes sure the version is at least v.
func (vc *versionController) Require(operation string, v Version) error {
	if v <= vc.cur {
		return nil
	}
	if vc.locked {
		return &VersionError{Have: vc.cur, Need: v, Operation: operation}
	}
	if vc.fixed || (vc.limit != 0 && v > vc.limit) {
		return &VersionError{Have: vc.cur, Need: v, Operation: operation}
	}
	vc.cur = v
	return nil
}

// Set changes the version to v.  Lowering the version is a no-op.
func (vc *versionController) Set(v Version) error {
	if v <= vc.cur {
		return nil
	}
	return vc.Require("setting the PDF version", v)
}

func (vc *versionController) Lock() {
	vc.locked = true
}
