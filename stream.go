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
	"fmt"
	"io"

	"golang.org/x/exp/maps"
)

// StreamData describes the dictionary and the content of a PDF stream.
//
// A stream is written in one of two ways.  In precomputed mode the encoded
// data is first collected in a [StreamCache], so that /Length can be
// written directly.  In on-the-fly mode /Length refers to an indirect
// number object, the encoded data is written directly to the output, and
// the number is filled in afterwards.  On-the-fly mode is used for streams
// written as part of the document body, unless Precompute is set.
type StreamData struct {
	// Dict holds the entries of the stream dictionary, other than /Length.
	// If Dict has a /Filter entry, the data produced is written unchanged
	// and no default filters are applied.
	Dict Dict

	// Type determines the default filters.
	Type StreamType

	// Filters holds the filters applied to the data.  If no filters are
	// added before the stream is written, the default filters for Type are
	// used.
	Filters FilterList

	// Produce writes the unencoded stream data to w.  It is called exactly
	// once, when the stream is written.
	Produce func(w io.Writer) error

	// SizeHint is an estimate of the encoded size, used to preallocate
	// buffers.
	SizeHint int

	// Precompute forces precomputed mode.
	Precompute bool

	declared bool // Dict contains an explicit /Filter entry
}

func (s *StreamData) isStream() {}

// SetData sets the content of the stream to data.
func (s *StreamData) SetData(data []byte) {
	s.Produce = func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}
	s.SizeHint = len(data)
}

// Stream is a PDF stream written as an indirect object.
type Stream struct {
	ObjectBase
	StreamData
}

// NewStream allocates a new stream, which is not yet attached to a
// document.
func NewStream(dict Dict, tp StreamType, produce func(w io.Writer) error) *Stream {
	return &Stream{
		StreamData: StreamData{
			Dict:    dict,
			Type:    tp,
			Produce: produce,
		},
	}
}

func (s *StreamData) prepareFilters(opt *Options) error {
	if s.Filters.state == filtersLocked {
		return nil
	}
	if _, ok := s.Dict["Filter"]; ok && !s.Filters.IsInitialized() {
		s.declared = true
	} else {
		err := s.Filters.AddDefaultFilters(opt, s.Type)
		if err != nil {
			return err
		}
	}
	s.Filters.Lock()
	return nil
}

// PopulateDict returns the stream dictionary, with the /Length entry set
// to length and the /Filter and /DecodeParms entries set from the filter
// list.  The Dict field of s is not modified.
func (s *StreamData) PopulateDict(length Object) Dict {
	dict := maps.Clone(s.Dict)
	if dict == nil {
		dict = Dict{}
	}
	dict["Length"] = length
	if s.declared || s.Filters.disabled {
		return dict
	}
	filter, parms := s.Filters.DictEntries()
	if filter != nil {
		dict["Filter"] = filter
		dict["DecodeParms"] = parms
	} else {
		delete(dict, "Filter")
		delete(dict, "DecodeParms")
	}
	return dict
}

// PDF implements the [Object] interface.
func (s *StreamData) PDF(w io.Writer) error {
	pw, _ := w.(*posWriter)
	var doc *Document
	opt := defaultOptions
	if pw != nil && pw.doc != nil {
		doc = pw.doc
		opt = doc.opt
	}

	err := s.prepareFilters(opt)
	if err != nil {
		return err
	}

	if doc != nil && doc.deferLengths && !s.Precompute && pw == doc.w {
		return s.writeOnTheFly(doc, pw)
	}
	return s.writePrecomputed(w, pw, opt)
}

// encoder returns the writer which applies all filters and the encryption
// to the data before it reaches dst.
func (s *StreamData) encoder(pw *posWriter, dst io.WriteCloser) (io.WriteCloser, error) {
	if pw != nil && pw.enc != nil {
		var err error
		dst, err = pw.enc.EncryptStream(pw.ref, dst)
		if err != nil {
			return nil, err
		}
	}
	return s.Filters.Encode(dst)
}

func (s *StreamData) produce(w io.WriteCloser) error {
	if s.Produce != nil {
		err := s.Produce(w)
		if err != nil {
			return err
		}
	}
	return w.Close()
}

func (s *StreamData) writePrecomputed(w io.Writer, pw *posWriter, opt *Options) (err error) {
	cache, err := NewStreamCache(opt.Cache, opt.TempDir, s.SizeHint)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := cache.Close()
		if err == nil {
			err = closeErr
		}
	}()

	enc, err := s.encoder(pw, withDummyClose{cache})
	if err != nil {
		return err
	}
	err = s.produce(enc)
	if err != nil {
		return err
	}

	dict := s.PopulateDict(Integer(cache.Size()))
	err = dict.PDF(w)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("\nstream\n"))
	if err != nil {
		return err
	}
	_, err = cache.WriteTo(w)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte("\nendstream"))
	return err
}

func (s *StreamData) writeOnTheFly(doc *Document, pw *posWriter) error {
	length := &numberObject{}
	_, err := doc.Register(length)
	if err != nil {
		return err
	}

	dict := s.PopulateDict(length.ref)
	err = dict.PDF(pw)
	if err != nil {
		return err
	}
	_, err = pw.Write([]byte("\nstream\n"))
	if err != nil {
		return err
	}

	start := pw.pos
	enc, err := s.encoder(pw, withDummyClose{pw})
	if err != nil {
		return err
	}
	err = s.produce(enc)
	if err != nil {
		return fmt.Errorf("stream %s: %w", pw.ref, err)
	}
	length.val = Integer(pw.pos - start)

	_, err = pw.Write([]byte("\nendstream"))
	return err
}
