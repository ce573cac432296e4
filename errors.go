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
	"errors"
	"fmt"
)

var (
	errVersion = errors.New("unsupported PDF version")

	// ErrEncryptionUnavailable is returned by [NewDocument] and
	// [Document.SetEncryption] when encryption was requested with
	// [Options.RequireEncryption], but the cryptographic primitives
	// needed by the security handler are not available.
	ErrEncryptionUnavailable = errors.New("PDF encryption is unavailable")

	errWorklistNotEmpty = errors.New("object stream output registered new objects")
	errClosed           = errors.New("document already closed")
	errTrailerWritten   = errors.New("trailer already written")
)

// IdentityError indicates a violation of the object identity rules, for
// example when an object is registered twice.
type IdentityError struct {
	Ref    Reference
	Reason string
}

func (err *IdentityError) Error() string {
	if err.Ref != 0 {
		return "object " + err.Ref.String() + ": " + err.Reason
	}
	return "object identity: " + err.Reason
}

// UnassignedReferenceError is returned when a reference to an object without
// an object number is written.
type UnassignedReferenceError struct {
	What string
}

func (err *UnassignedReferenceError) Error() string {
	if err.What == "" {
		return "reference to object without number"
	}
	return "reference to " + err.What + " without number"
}

// FilterConfigError indicates an invalid filter configuration.
// This error is reported when the filter is configured, not when data is
// encoded.
type FilterConfigError struct {
	Filter string
	Err    error
}

func (err *FilterConfigError) Error() string {
	return "filter " + err.Filter + ": " + err.Err.Error()
}

func (err *FilterConfigError) Unwrap() error {
	return err.Err
}

// ConformanceError is returned when an operation is not allowed under the
// active output profile (e.g. PDF/A-1b).  No bytes of the offending object
// have been written when this error is returned.
type ConformanceError struct {
	Profile   Profile
	Operation string
}

func (err *ConformanceError) Error() string {
	return fmt.Sprintf("%s: %s is not allowed", err.Profile, err.Operation)
}

// VersionError is returned when a feature requires a higher PDF version
// than is available.
type VersionError struct {
	Have      Version
	Need      Version
	Operation string
}

func (err *VersionError) Error() string {
	if err.Need == 0 {
		return err.Operation + ": PDF version cannot be changed any more"
	}
	return fmt.Sprintf("%s requires PDF version %s or higher, have %s",
		err.Operation, err.Need, err.Have)
}
