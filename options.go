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
	"crypto/aes"
	"crypto/md5"
	"crypto/rc4"
	"crypto/sha256"
	"errors"
	"log/slog"
	"strconv"
	"time"
)

// Options configures a [Document].  The zero value is valid and produces an
// unencrypted PDF-1.4 file with Flate compression, a classic cross-reference
// table and in-memory stream buffers.
type Options struct {
	// Version is the initial PDF version.  The default is PDF-1.4.
	Version Version

	// FixedVersion selects the fixed version controller: requests for
	// features which need a higher version than Version fail with a
	// [*VersionError].  Otherwise the version is upgraded as needed.
	FixedVersion bool

	// Cache selects where encoded stream data is buffered before it is
	// written to the output.
	Cache CacheKind

	// TempDir is the directory for temporary files when Cache is
	// CacheTempFile.  If empty, the default directory for temporary files
	// is used.
	TempDir string

	// Filters overrides the default filter names for stream types.
	// Valid names are "flate", "ascii-85", "ascii-hex", "run-length" and
	// "null".
	Filters map[StreamType][]string

	// DisableCompression disables all default filters.
	DisableCompression bool

	// ObjectStreams enables object streams and a cross-reference stream.
	// This requires PDF-1.5.
	ObjectStreams bool

	// Accessibility enables the output of the structure tree.  If the
	// PDF version is at least 1.5, structure elements are packed into
	// object streams.
	Accessibility bool

	// Profile is the conformance profile checked while the file is written.
	Profile Profile

	// Encryption, if non-nil, enables the standard security handler.
	Encryption *EncryptionParams

	// RequireEncryption turns the absence of the needed cryptographic
	// primitives into an error.  Otherwise a warning is logged and the
	// document is written without encryption.
	RequireEncryption bool

	// FileID, if set, is used as the file identifier in the trailer.
	FileID [2][]byte

	// RandomFileID selects a random file identifier.  This is implied
	// when encryption is enabled.  Otherwise the identifier is an MD5
	// digest of the document information.
	RandomFileID bool

	Producer     string
	Creator      string
	CreationDate time.Time

	// Crypto describes the available cryptographic primitives.  If this is
	// the zero value, ProbeCrypto is used.
	Crypto CryptoSupport

	// ImageCacheSize is the number of image XObjects which are remembered
	// for reuse.  The default is 32.
	ImageCacheSize int

	// Logger receives warnings and debug messages.  If nil, nothing is
	// logged.
	Logger *slog.Logger
}

var defaultOptions = &Options{}

// Validate checks the options for consistency.
func (opt *Options) Validate() error {
	if opt.Version != 0 {
		if _, err := opt.Version.ToString(); err != nil {
			return err
		}
	}
	for tp, names := range opt.Filters {
		if !tp.isValid() {
			return &FilterConfigError{Filter: tp.String(), Err: errors.New("unknown stream type")}
		}
		for _, name := range names {
			if _, err := filterByName(name); err != nil {
				return err
			}
		}
	}
	if opt.Encryption != nil {
		if err := opt.Encryption.validate(); err != nil {
			return err
		}
	}
	if (opt.FileID[0] == nil) != (opt.FileID[1] == nil) {
		return errors.New("incomplete file identifier")
	}
	return nil
}

func (opt *Options) logger() *slog.Logger {
	if opt.Logger != nil {
		return opt.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// CacheKind selects the backing store for buffered stream data.
type CacheKind int

const (
	// CacheMemory keeps buffered stream data in memory.
	CacheMemory CacheKind = iota

	// CacheTempFile spills buffered stream data to temporary files,
	// which are removed once the stream is written.
	CacheTempFile
)

// StreamType classifies streams for the purpose of choosing default filters.
type StreamType int

// These are the supported stream types.
const (
	StreamDefault StreamType = iota
	StreamContent
	StreamImage
	StreamJPEG
	StreamTIFF
	StreamFont
	StreamMetadata
	streamTypeEnd
)

func (tp StreamType) isValid() bool {
	return tp >= StreamDefault && tp < streamTypeEnd
}

func (tp StreamType) String() string {
	switch tp {
	case StreamDefault:
		return "default"
	case StreamContent:
		return "content"
	case StreamImage:
		return "image"
	case StreamJPEG:
		return "jpeg"
	case StreamTIFF:
		return "tiff"
	case StreamFont:
		return "font"
	case StreamMetadata:
		return "metadata"
	default:
		return "pdf.StreamType(" + strconv.Itoa(int(tp)) + ")"
	}
}

// CryptoSupport lists the cryptographic primitives which are available to
// the security handler.
type CryptoSupport struct {
	MD5    bool
	RC4    bool
	AES    bool
	SHA256 bool
}

func (c CryptoSupport) isZero() bool {
	return c == CryptoSupport{}
}

// ProbeCrypto determines which cryptographic primitives are usable.
func ProbeCrypto() CryptoSupport {
	var res CryptoSupport
	res.MD5 = probe(func() {
		h := md5.New()
		h.Write([]byte{0})
		h.Sum(nil)
	})
	res.RC4 = probe(func() {
		c, err := rc4.NewCipher([]byte{1, 2, 3, 4, 5})
		if err != nil {
			panic(err)
		}
		c.XORKeyStream(make([]byte, 1), []byte{0})
	})
	res.AES = probe(func() {
		_, err := aes.NewCipher(make([]byte, 32))
		if err != nil {
			panic(err)
		}
	})
	res.SHA256 = probe(func() {
		sha256.Sum256(nil)
	})
	return res
}

func probe(f func()) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	f()
	return true
}
