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
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/exp/slices"
)

var docSerial atomic.Uint64

// Document is a PDF file under construction.
//
// Objects are attached to the document by assigning them an object number.
// Numbered objects are collected in a queue and written to the output in the
// order in which they were added, whenever [Document.Flush] is called.
// Objects may add further objects to the queue while they are being written.
// Trailer objects, like the document catalog, are written by
// [Document.WriteTrailer], after all other objects.
//
// A Document must only be used by one goroutine at a time.
type Document struct {
	opt    *Options
	log    *slog.Logger
	serial uint64

	out *sink
	w   *posWriter

	base int64 // start offset of the output, for seekable outputs

	version *versionController
	profile Profile
	crypto  CryptoSupport

	nextNumber  uint32
	xref        []xrefEntry // indexed by object number
	queue       []Indirect
	trailerObjs []Indirect
	structElems []Indirect
	objStm      *objStmManager

	shared   map[Category][]Shareable
	resNames map[Reference]Name
	resCount map[Category]int

	dests  []namedDest
	images *lruCache

	catalog *Catalog
	pages   *Pages
	info    *Info

	sec     *stdSecHandler
	encDict *DictObject
	fileID  [2][]byte

	headerWritten  bool
	bodyStarted    bool
	trailerWritten bool
	deferLengths   bool

	err error
}

// NewDocument prepares a new PDF document, which will be written to w.
// If opt is nil, default options are used.
//
// If w implements [io.WriteSeeker], values which only become known after
// they are referenced, like the lengths of embedded font programs, are
// filled in place.  Otherwise they are written as separate objects.
func NewDocument(w io.Writer, opt *Options) (*Document, error) {
	if opt == nil {
		opt = defaultOptions
	}
	err := opt.Validate()
	if err != nil {
		return nil, err
	}

	ver := opt.Version
	if ver == 0 {
		ver = V1_4
	}
	vc := newVersionController(ver, opt.FixedVersion)
	vc.limit = opt.Profile.maxVersion()
	if vc.limit != 0 && ver > vc.limit {
		return nil, opt.Profile.violation("PDF version " + ver.String())
	}

	out := newSink(w)
	d := &Document{
		opt:          opt,
		log:          opt.logger(),
		serial:       docSerial.Add(1),
		out:          out,
		version:      vc,
		profile:      opt.Profile,
		crypto:       opt.Crypto,
		nextNumber:   1,
		xref:         make([]xrefEntry, 1),
		shared:       make(map[Category][]Shareable),
		resNames:     make(map[Reference]Name),
		resCount:     make(map[Category]int),
		deferLengths: true,
	}
	d.w = &posWriter{w: out, doc: d}
	d.objStm = &objStmManager{doc: d}
	if ws, ok := out.seeker(); ok {
		d.base, err = ws.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
	}

	cacheSize := opt.ImageCacheSize
	if cacheSize == 0 {
		cacheSize = 32
	}
	d.images = newLRU(cacheSize)

	if opt.ObjectStreams {
		err = d.RequireVersion("object streams", V1_5)
		if err != nil {
			return nil, err
		}
	}

	d.pages = &Pages{}
	d.catalog = &Catalog{pages: d.pages}
	d.info = &Info{
		Producer:     opt.Producer,
		Creator:      opt.Creator,
		CreationDate: opt.CreationDate,
	}
	for _, obj := range []Indirect{d.pages, d.catalog, d.info} {
		_, err = d.RegisterTrailer(obj)
		if err != nil {
			return nil, err
		}
	}

	if opt.Encryption != nil {
		err = d.SetEncryption(opt.Encryption)
		if err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Options returns the options of the document.  The returned value must not
// be modified.
func (d *Document) Options() *Options {
	return d.opt
}

// Profile returns the active conformance profile.
func (d *Document) Profile() Profile {
	return d.profile
}

// Logger returns the logger of the document.
func (d *Document) Logger() *slog.Logger {
	return d.log
}

// AssignNumber assigns an object number to obj and attaches it to the
// document, without adding it to the output queue.  The caller must
// later call [Document.Add] or [Document.RegisterTrailer].
func (d *Document) AssignNumber(obj Indirect) (Reference, error) {
	b := obj.base()
	if b.ref != 0 {
		return 0, &IdentityError{Ref: b.ref, Reason: "already has an object number"}
	}
	if b.owner != 0 && b.owner != d.serial {
		return 0, &IdentityError{Reason: "already has a parent document"}
	}
	if d.nextNumber == 0 {
		return 0, &IdentityError{Reason: "too many objects"}
	}

	b.owner = d.serial
	b.ref = NewReference(d.nextNumber, 0)
	d.nextNumber++
	d.xref = append(d.xref, xrefEntry{})
	return b.ref, nil
}

// Add appends the numbered object obj to the output queue.  Objects which
// implement [Shareable] are indexed for deduplication.
func (d *Document) Add(obj Indirect) error {
	b := obj.base()
	if b.ref == 0 {
		return &IdentityError{Reason: "cannot add object without number"}
	}
	if b.owner != d.serial {
		return &IdentityError{Ref: b.ref, Reason: "belongs to a different document"}
	}
	if d.xref[b.ref.Number()].written {
		return &IdentityError{Ref: b.ref, Reason: "already written"}
	}
	d.queue = append(d.queue, obj)
	if s, ok := obj.(Shareable); ok {
		d.index(s)
	}
	return nil
}

// Register assigns an object number to obj and adds it to the output
// queue.
func (d *Document) Register(obj Indirect) (Reference, error) {
	ref, err := d.AssignNumber(obj)
	if err != nil {
		return 0, err
	}
	err = d.Add(obj)
	if err != nil {
		return 0, err
	}
	return ref, nil
}

// RegisterTrailer registers an object which is written by
// [Document.WriteTrailer], after all objects in the queue.  If obj has no
// object number yet, one is assigned.
func (d *Document) RegisterTrailer(obj Indirect) (Reference, error) {
	if d.trailerWritten {
		return 0, errTrailerWritten
	}
	b := obj.base()
	if b.ref == 0 {
		_, err := d.AssignNumber(obj)
		if err != nil {
			return 0, err
		}
	} else if b.owner != d.serial {
		return 0, &IdentityError{Ref: b.ref, Reason: "belongs to a different document"}
	}
	d.trailerObjs = append(d.trailerObjs, obj)
	if s, ok := obj.(Shareable); ok {
		d.index(s)
	}
	return b.ref, nil
}

// RegisterStructElem registers an element of the structure tree.  Structure
// elements are written by [Document.WriteTrailer], in object streams if
// possible.  Elements which have not been assigned an object number by then
// are omitted.
func (d *Document) RegisterStructElem(obj Indirect) {
	d.structElems = append(d.structElems, obj)
}

// Find returns a registered object which is equal to obj, or nil if there
// is none.
func (d *Document) Find(obj Shareable) Shareable {
	for _, cand := range d.shared[obj.Category()] {
		if cand == obj || cand.Equal(obj) {
			return cand
		}
	}
	return nil
}

// Share returns the reference of a registered object equal to obj, if one
// exists.  Otherwise obj is registered and its new reference is returned.
func (d *Document) Share(obj Shareable) (Reference, error) {
	if found := d.Find(obj); found != nil {
		return found.base().ref, nil
	}
	return d.Register(obj)
}

// ResourceName returns the resource name assigned to obj, like "Sh1" for
// the first shading.  The result is empty for objects which are not
// registered, or whose category does not define resource names.
func (d *Document) ResourceName(obj Shareable) Name {
	if found := d.Find(obj); found != nil {
		return d.resNames[found.base().ref]
	}
	return ""
}

func (d *Document) index(obj Shareable) {
	cat := obj.Category()
	for _, cand := range d.shared[cat] {
		if cand == obj {
			return
		}
	}
	d.shared[cat] = append(d.shared[cat], obj)
	if prefix := cat.resourcePrefix(); prefix != "" {
		d.resCount[cat]++
		d.resNames[obj.base().ref] = Name(fmt.Sprintf("%s%d", prefix, d.resCount[cat]))
	}
}

// Version returns the current PDF version of the document.
func (d *Document) Version() Version {
	return d.version.cur
}

// SetVersion raises the PDF version to v.  Requests to lower the version
// are ignored.
func (d *Document) SetVersion(v Version) error {
	return d.version.Set(v)
}

// RequireVersion makes sure the document uses at least PDF version v.
// The argument operation names the feature which needs the version, for
// use in error messages.
func (d *Document) RequireVersion(operation string, v Version) error {
	err := d.version.Require(operation, v)
	if err != nil {
		var vErr *VersionError
		if errors.As(err, &vErr) && d.version.limit != 0 && v > d.version.limit {
			return d.profile.violation(operation)
		}
	}
	return err
}

// SetEncryption enables encryption with the standard security handler.
// This must be called before any object is written.
//
// If the cryptographic primitives are unavailable, a warning is logged and
// the document is written without encryption, unless
// [Options.RequireEncryption] is set.
func (d *Document) SetEncryption(params *EncryptionParams) error {
	if d.bodyStarted {
		return errors.New("cannot enable encryption after objects have been written")
	}
	if d.sec != nil {
		return errors.New("encryption already enabled")
	}
	err := d.profile.VerifyEncryptionAllowed()
	if err != nil {
		return err
	}
	err = params.validate()
	if err != nil {
		return err
	}

	c := d.crypto
	if c.isZero() {
		c = ProbeCrypto()
		d.crypto = c
	}
	if !checkCrypto(c, params.keyLength()) {
		if d.opt.RequireEncryption {
			return ErrEncryptionUnavailable
		}
		d.log.Warn("PDF encryption is unavailable, writing without encryption")
		return nil
	}

	err = d.RequireVersion("encryption", params.requiredVersion())
	if err != nil {
		d.log.Warn("encryption needs a higher PDF version",
			slog.String("have", d.version.cur.String()),
			slog.String("need", params.requiredVersion().String()))
		return err
	}

	id, err := d.getFileID(true)
	if err != nil {
		return err
	}
	sec, err := newStdSecHandler(params, id[0])
	if err != nil {
		return err
	}
	encDict := NewDictObject(sec.AsDict())
	_, err = d.RegisterTrailer(encDict)
	if err != nil {
		return err
	}
	d.sec = sec
	d.encDict = encDict
	return nil
}

// IsEncrypted reports whether the document is encrypted.
func (d *Document) IsEncrypted() bool {
	return d.sec != nil
}

// Catalog returns the document catalog.
func (d *Document) Catalog() *Catalog {
	return d.catalog
}

// Info returns the document information dictionary.
func (d *Document) Info() *Info {
	return d.info
}

// Pages returns the root of the page tree.
func (d *Document) Pages() *Pages {
	return d.pages
}

// AddImage registers the image XObject img under the given key.  If an
// image with the same key was added before and is still remembered, img is
// discarded and the reference of the earlier image is returned.
func (d *Document) AddImage(key string, img Indirect) (Reference, error) {
	if ref, ok := d.images.Get(key); ok {
		return ref, nil
	}
	ref, err := d.Register(img)
	if err != nil {
		return 0, err
	}
	d.images.Put(key, ref)
	return ref, nil
}

// Image returns the reference of the image XObject registered under key.
func (d *Document) Image(key string) (Reference, bool) {
	return d.images.Get(key)
}

// WriteHeader writes the PDF file header.  The header is written
// automatically by the first call to [Document.Flush], if needed.
func (d *Document) WriteHeader() error {
	if d.err != nil {
		return d.err
	}
	if d.headerWritten {
		return nil
	}
	d.headerWritten = true

	d.version.header = d.version.cur
	verString, err := d.version.cur.ToString()
	if err != nil {
		return d.fail(err)
	}
	_, err = fmt.Fprintf(d.w, "%%PDF-%s\n%%\xAA\xAB\xAC\xAD\n", verString)
	if err != nil {
		return d.fail(err)
	}
	d.log.Debug("PDF header written", slog.String("version", verString))
	return nil
}

// Flush writes all queued objects to the output.  Objects written during
// Flush may add further objects to the queue; these are written as well.
func (d *Document) Flush() error {
	err := d.WriteHeader()
	if err != nil {
		return err
	}

	count := 0
	for len(d.queue) > 0 {
		obj := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]

		if d.opt.ObjectStreams && d.inObjectStream(obj) {
			err = d.objStm.add(obj)
		} else {
			err = d.writeIndirect(obj, true)
		}
		if err != nil {
			return d.fail(err)
		}
		count++
	}
	d.queue = nil
	if count > 0 {
		d.log.Debug("object queue drained", slog.Int("objects", count))
	}
	return nil
}

// WriteTrailer writes all remaining objects, the cross-reference section
// and the file trailer.  After WriteTrailer has been called, no further
// objects can be added to the document.  The underlying writer is not
// closed.
func (d *Document) WriteTrailer() error {
	if d.err != nil {
		return d.err
	}
	if d.trailerWritten {
		return errTrailerWritten
	}

	err := d.writeDests()
	if err != nil {
		return d.fail(err)
	}
	err = d.Flush()
	if err != nil {
		return err
	}

	err = d.profile.verifyTrailer(d)
	if err != nil {
		return err
	}

	compressed := d.useXRefStream()
	for _, elem := range d.structElems {
		if elem.base().ref == 0 {
			continue
		}
		if compressed && d.inObjectStream(elem) {
			err = d.objStm.add(elem)
		} else {
			err = d.writeIndirect(elem, true)
		}
		if err != nil {
			return d.fail(err)
		}
	}

	d.version.Lock()
	d.deferLengths = false
	d.trailerWritten = true
	for _, obj := range d.trailerObjs {
		err = d.writeIndirect(obj, obj != d.encDict)
		if err != nil {
			return d.fail(err)
		}
	}
	err = d.Flush()
	if err != nil {
		return err
	}
	err = d.objStm.flush()
	if err != nil {
		return d.fail(err)
	}
	if len(d.queue) > 0 {
		return d.fail(errWorklistNotEmpty)
	}
	for i := 1; i < len(d.xref); i++ {
		if !d.xref[i].written {
			return d.fail(&IdentityError{
				Ref:    NewReference(uint32(i), 0),
				Reason: "has a number but was never written",
			})
		}
	}

	trailer, err := d.trailerDict()
	if err != nil {
		return d.fail(err)
	}
	var xrefPos int64
	if compressed {
		d.log.Debug("writing cross-reference stream")
		xrefPos, err = d.writeXRefStream(trailer)
	} else {
		d.log.Debug("writing cross-reference table")
		xrefPos, err = d.writeXRefTable(trailer)
	}
	if err != nil {
		return d.fail(err)
	}

	_, err = fmt.Fprintf(d.w, "\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	if err != nil {
		return d.fail(err)
	}
	err = d.out.buf.Flush()
	if err != nil {
		return d.fail(err)
	}
	return nil
}

// Close writes the trailer, if this has not been done yet.  The underlying
// writer is not closed.
func (d *Document) Close() error {
	if d.err != nil {
		if d.err == errClosed {
			return nil
		}
		return d.err
	}
	if !d.trailerWritten {
		err := d.WriteTrailer()
		if err != nil {
			return err
		}
	}
	d.err = errClosed
	return nil
}

func (d *Document) fail(err error) error {
	if d.err == nil {
		d.err = err
	}
	return err
}

func (d *Document) useXRefStream() bool {
	return d.version.cur >= V1_5 && (d.opt.ObjectStreams || d.opt.Accessibility)
}

func (d *Document) inObjectStream(obj Indirect) bool {
	if _, isStream := obj.(interface{ isStream() }); isStream {
		return false
	}
	if obj == Indirect(d.encDict) || obj.base().ref.Generation() != 0 {
		return false
	}
	if os, ok := obj.(ObjectStreamer); ok {
		return os.InObjectStream()
	}
	return true
}

// writeIndirect writes obj as an indirect object, recording its position
// for the cross-reference section.
func (d *Document) writeIndirect(obj Indirect, encrypt bool) error {
	ref := obj.base().ref
	if ref == 0 {
		return &UnassignedReferenceError{What: fmt.Sprintf("%T", obj)}
	}
	if obj.base().owner != d.serial {
		return &IdentityError{Ref: ref, Reason: "belongs to a different document"}
	}
	entry := &d.xref[ref.Number()]
	if entry.written {
		return &IdentityError{Ref: ref, Reason: "already written"}
	}
	d.bodyStarted = true
	entry.written = true
	entry.pos = d.w.pos
	entry.gen = ref.Generation()

	_, err := fmt.Fprintf(d.w, "%d %d obj\n", ref.Number(), ref.Generation())
	if err != nil {
		return err
	}
	var enc *stdSecHandler
	if encrypt {
		enc = d.sec
	}
	restore := d.w.setObject(ref, enc)
	err = obj.PDF(d.w)
	restore()
	if err != nil {
		return err
	}
	_, err = d.w.Write([]byte("\nendobj\n"))
	return err
}

// patch overwrites data at the given output positions.  This requires a
// seekable output.
func (d *Document) patch(pos []int64, value []byte) error {
	err := d.out.buf.Flush()
	if err != nil {
		return d.fail(err)
	}
	ws, ok := d.out.seeker()
	if !ok {
		return errors.New("output is not seekable")
	}
	currentPos, err := ws.Seek(0, io.SeekCurrent)
	if err != nil {
		return d.fail(err)
	}
	for _, p := range pos {
		_, err = ws.Seek(d.base+p, io.SeekStart)
		if err != nil {
			return d.fail(err)
		}
		_, err = ws.Write(value)
		if err != nil {
			return d.fail(err)
		}
	}
	_, err = ws.Seek(currentPos, io.SeekStart)
	if err != nil {
		return d.fail(err)
	}
	return nil
}

func (d *Document) trailerDict() (Dict, error) {
	trailer := Dict{
		"Size": Integer(d.nextNumber),
		"Root": d.catalog.ref,
		"Info": d.info.ref,
	}
	id, err := d.getFileID(false)
	if err != nil {
		return nil, err
	}
	trailer["ID"] = Array{String(id[0]), String(id[1])}
	if d.encDict != nil {
		trailer["Encrypt"] = d.encDict.ref
	}
	return trailer, nil
}

type namedDest struct {
	name string
	dest Object
}

// AddDestination adds a named destination.  The destinations are written
// as a name tree, referenced from the /Dests entry of the /Names
// dictionary in the document catalog.
func (d *Document) AddDestination(name string, dest Object) error {
	if d.trailerWritten {
		return errTrailerWritten
	}
	d.dests = append(d.dests, namedDest{name: name, dest: dest})
	return nil
}

// writeDests creates the name tree for the named destinations.  Entries in
// a name tree must be sorted by key.
func (d *Document) writeDests() error {
	if len(d.dests) == 0 {
		return nil
	}
	slices.SortStableFunc(d.dests, func(a, b namedDest) int {
		return strings.Compare(a.name, b.name)
	})

	names := make(Array, 0, 2*len(d.dests))
	for _, dest := range d.dests {
		names = append(names, String(dest.name), dest.dest)
	}
	tree := NewDictObject(Dict{"Names": names})
	ref, err := d.RegisterTrailer(tree)
	if err != nil {
		return err
	}
	if d.catalog.Names == nil {
		d.catalog.Names = Dict{}
	}
	d.catalog.Names["Dests"] = ref
	return nil
}
