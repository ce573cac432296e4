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

package function

import (
	"errors"
	"fmt"
)

// ErrInvalid matches all errors which report an invalid function, using
// [errors.Is].
var ErrInvalid = errors.New("invalid function")

// InvalidFunctionError reports an invalid entry of a function dictionary.
// The error is returned before any part of the function is written.
type InvalidFunctionError struct {
	FunctionType int
	Field        string
	Message      string
}

func (e *InvalidFunctionError) Error() string {
	return fmt.Sprintf("type %d function: /%s: %s", e.FunctionType, e.Field, e.Message)
}

func (e *InvalidFunctionError) Unwrap() error {
	return ErrInvalid
}

func invalid(tp int, field, format string, args ...any) *InvalidFunctionError {
	return &InvalidFunctionError{
		FunctionType: tp,
		Field:        field,
		Message:      fmt.Sprintf(format, args...),
	}
}
