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
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/apache/xmlgraphics-fop-sub006/ascii85"
	"github.com/apache/xmlgraphics-fop-sub006/internal/filter/asciihex"
	"github.com/apache/xmlgraphics-fop-sub006/internal/filter/predict"
	"github.com/apache/xmlgraphics-fop-sub006/internal/filter/runlength"
)

// Filter represents a PDF stream filter.
//
// Info returns the name of the decode filter and the parameters for the
// /DecodeParms entry.  A filter with an empty name does not appear in the
// stream dictionary.  Encode wraps w in an encoder.
type Filter interface {
	Info() (Name, Dict)
	Encode(w io.WriteCloser) (io.WriteCloser, error)
}

// isASCII reports whether f produces 7-bit output.  Such filters are always
// applied after all binary filters.
func isASCII(f Filter) bool {
	switch f.(type) {
	case FilterASCII85, *FilterASCII85, FilterASCIIHex, *FilterASCIIHex:
		return true
	}
	return false
}

// FilterFlate is the FlateDecode filter, optionally combined with a TIFF or
// PNG predictor.
type FilterFlate struct {
	// Predictor is the predictor algorithm, 0 or 1 for none.
	Predictor int

	Colors           int
	BitsPerComponent int
	Columns          int
}

// Validate checks the filter parameters.  Setting any of the predictor
// parameters while no predictor is selected is an error.
func (f *FilterFlate) Validate() error {
	if f.Predictor <= 1 {
		if f.Colors != 0 || f.BitsPerComponent != 0 || f.Columns != 0 {
			return &FilterConfigError{
				Filter: "FlateDecode",
				Err:    errors.New("predictor parameters set, but no predictor selected"),
			}
		}
		return nil
	}
	err := f.params().Validate()
	if err != nil {
		return &FilterConfigError{Filter: "FlateDecode", Err: err}
	}
	return nil
}

func (f *FilterFlate) params() *predict.Params {
	p := &predict.Params{
		Predictor:        f.Predictor,
		Colors:           f.Colors,
		BitsPerComponent: f.BitsPerComponent,
		Columns:          f.Columns,
	}
	if p.Colors == 0 {
		p.Colors = 1
	}
	if p.BitsPerComponent == 0 {
		p.BitsPerComponent = 8
	}
	if p.Columns == 0 {
		p.Columns = 1
	}
	return p
}

// Info implements the [Filter] interface.
func (f *FilterFlate) Info() (Name, Dict) {
	if f.Predictor <= 1 {
		return "FlateDecode", nil
	}
	p := f.params()
	parms := Dict{"Predictor": Integer(p.Predictor)}
	if p.Colors != 1 {
		parms["Colors"] = Integer(p.Colors)
	}
	if p.BitsPerComponent != 8 {
		parms["BitsPerComponent"] = Integer(p.BitsPerComponent)
	}
	if p.Columns != 1 {
		parms["Columns"] = Integer(p.Columns)
	}
	return "FlateDecode", parms
}

// Encode implements the [Filter] interface.
func (f *FilterFlate) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	zc := &zlibWriter{Writer: zw, w: w}
	if f.Predictor <= 1 {
		return zc, nil
	}
	return predict.NewWriter(zc, f.params())
}

type zlibWriter struct {
	*zlib.Writer
	w io.WriteCloser
}

func (w *zlibWriter) Close() error {
	err := w.Writer.Close()
	if err != nil {
		return err
	}
	return w.w.Close()
}

// FilterASCII85 is the ASCII85Decode filter.
type FilterASCII85 struct{}

// Info implements the [Filter] interface.
func (f FilterASCII85) Info() (Name, Dict) {
	return "ASCII85Decode", nil
}

// Encode implements the [Filter] interface.
func (f FilterASCII85) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return ascii85.Encode(w, 79), nil
}

// FilterASCIIHex is the ASCIIHexDecode filter.
type FilterASCIIHex struct{}

// Info implements the [Filter] interface.
func (f FilterASCIIHex) Info() (Name, Dict) {
	return "ASCIIHexDecode", nil
}

// Encode implements the [Filter] interface.
func (f FilterASCIIHex) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return asciihex.Encode(w, 79), nil
}

// FilterRunLength is the RunLengthDecode filter.
type FilterRunLength struct{}

// Info implements the [Filter] interface.
func (f FilterRunLength) Info() (Name, Dict) {
	return "RunLengthDecode", nil
}

// Encode implements the [Filter] interface.
func (f FilterRunLength) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return runlength.Encode(w), nil
}

// FilterNull leaves the data unchanged and does not appear in the stream
// dictionary.
type FilterNull struct{}

// Info implements the [Filter] interface.
func (f FilterNull) Info() (Name, Dict) {
	return "", nil
}

// Encode implements the [Filter] interface.
func (f FilterNull) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return w, nil
}

// FilterDCT marks data which is already DCT (JPEG) encoded.  The data is
// written unchanged.
type FilterDCT struct {
	// ColorTransform is written to /DecodeParms if set.
	ColorTransform *int
}

// Info implements the [Filter] interface.
func (f FilterDCT) Info() (Name, Dict) {
	if f.ColorTransform != nil {
		return "DCTDecode", Dict{"ColorTransform": Integer(*f.ColorTransform)}
	}
	return "DCTDecode", nil
}

// Encode implements the [Filter] interface.
func (f FilterDCT) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return w, nil
}

// FilterCCITT marks data which is already CCITT fax encoded, e.g. taken
// from a TIFF file.  The data is written unchanged.
type FilterCCITT struct {
	K        int
	Columns  int
	Rows     int
	BlackIs1 bool
}

// Info implements the [Filter] interface.
func (f FilterCCITT) Info() (Name, Dict) {
	parms := Dict{}
	if f.K != 0 {
		parms["K"] = Integer(f.K)
	}
	if f.Columns != 0 && f.Columns != 1728 {
		parms["Columns"] = Integer(f.Columns)
	}
	if f.Rows != 0 {
		parms["Rows"] = Integer(f.Rows)
	}
	if f.BlackIs1 {
		parms["BlackIs1"] = Bool(true)
	}
	if len(parms) == 0 {
		parms = nil
	}
	return "CCITTFaxDecode", parms
}

// Encode implements the [Filter] interface.
func (f FilterCCITT) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	return w, nil
}

// filterByName returns the filter for a name used in [Options.Filters].
func filterByName(name string) (Filter, error) {
	switch name {
	case "flate":
		return &FilterFlate{}, nil
	case "ascii-85", "ascii85":
		return FilterASCII85{}, nil
	case "ascii-hex", "asciihex":
		return FilterASCIIHex{}, nil
	case "run-length", "runlength":
		return FilterRunLength{}, nil
	case "null":
		return FilterNull{}, nil
	}
	return nil, &FilterConfigError{Filter: name, Err: errors.New("unknown filter")}
}

type filterListState int

const (
	filtersUninitialized filterListState = iota
	filtersDefaults
	filtersLocked
)

// FilterList is the ordered list of filters applied to a stream.  Filters
// are applied in the order of the list, so the /Filter entry of the stream
// dictionary lists them in reverse order.
//
// A FilterList starts uninitialized.  Filters may be added until the list is
// locked, which happens when the stream is written.  AddDefaultFilters only
// has an effect on an uninitialized list.
type FilterList struct {
	filters  []Filter
	state    filterListState
	disabled bool
}

// AddFilter appends f to the list.  ASCII filters are kept at the end of
// the list.
func (fl *FilterList) AddFilter(f Filter) error {
	if fl.state == filtersLocked {
		return &FilterConfigError{Filter: filterName(f), Err: errors.New("filter list is locked")}
	}
	if ff, ok := f.(*FilterFlate); ok {
		if err := ff.Validate(); err != nil {
			return err
		}
	}
	if _, isNull := f.(FilterNull); isNull {
		if fl.state == filtersUninitialized {
			fl.state = filtersDefaults
		}
		return nil
	}

	if isASCII(f) {
		fl.filters = append(fl.filters, f)
	} else {
		pos := len(fl.filters)
		for pos > 0 && isASCII(fl.filters[pos-1]) {
			pos--
		}
		fl.filters = append(fl.filters, nil)
		copy(fl.filters[pos+1:], fl.filters[pos:])
		fl.filters[pos] = f
	}
	if fl.state == filtersUninitialized {
		fl.state = filtersDefaults
	}
	return nil
}

// AddFilterByName adds a filter given by its configuration name, e.g.
// "flate".
func (fl *FilterList) AddFilterByName(name string) error {
	f, err := filterByName(name)
	if err != nil {
		return err
	}
	return fl.AddFilter(f)
}

// IsInitialized reports whether filters have been added to the list, or
// whether default filters have been applied.
func (fl *FilterList) IsInitialized() bool {
	return fl.state != filtersUninitialized
}

// AddDefaultFilters adds the default filters for streams of type tp, unless
// the list is already initialized.
func (fl *FilterList) AddDefaultFilters(opt *Options, tp StreamType) error {
	if fl.state != filtersUninitialized {
		return nil
	}
	fl.state = filtersDefaults
	if opt.DisableCompression {
		fl.disabled = true
		return nil
	}

	names, ok := opt.Filters[tp]
	if !ok {
		names, ok = opt.Filters[StreamDefault]
		if !ok || tp == StreamJPEG || tp == StreamTIFF || tp == StreamMetadata {
			names = defaultFilters(tp)
		}
	}
	for _, name := range names {
		err := fl.AddFilterByName(name)
		if err != nil {
			return err
		}
	}
	return nil
}

func defaultFilters(tp StreamType) []string {
	switch tp {
	case StreamJPEG, StreamTIFF, StreamMetadata:
		// JPEG and TIFF data carries its own encoding; XMP metadata must be
		// readable by applications which do not understand PDF.
		return []string{"null"}
	default:
		return []string{"flate"}
	}
}

// Lock prevents further changes to the list.
func (fl *FilterList) Lock() {
	fl.state = filtersLocked
}

// Filters returns the filters in the list, in the order they are applied.
func (fl *FilterList) Filters() []Filter {
	return fl.filters
}

// DictEntries returns the values for the /Filter and /DecodeParms entries
// of the stream dictionary.  Either value may be nil.
func (fl *FilterList) DictEntries() (filter Object, parms Object) {
	var names Array
	var params Array
	hasParams := false
	for i := len(fl.filters) - 1; i >= 0; i-- {
		name, p := fl.filters[i].Info()
		if name == "" {
			continue
		}
		names = append(names, name)
		if p != nil {
			params = append(params, p)
			hasParams = true
		} else {
			params = append(params, nil)
		}
	}

	switch len(names) {
	case 0:
		return nil, nil
	case 1:
		filter = names[0]
		if hasParams {
			parms = params[0]
		}
	default:
		filter = names
		if hasParams {
			parms = params
		}
	}
	return filter, parms
}

// Encode returns a writer which applies all filters in the list and writes
// the result to w.  Closing the returned writer closes w.
func (fl *FilterList) Encode(w io.WriteCloser) (io.WriteCloser, error) {
	for i := len(fl.filters) - 1; i >= 0; i-- {
		var err error
		w, err = fl.filters[i].Encode(w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filterName(fl.filters[i]), err)
		}
	}
	return w, nil
}

func filterName(f Filter) string {
	name, _ := f.Info()
	if name == "" {
		return "null"
	}
	return string(name)
}
