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
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/rc4"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/xdg-go/stringprep"
)

// EncryptionParams describes how a document is encrypted using the
// standard security handler.
type EncryptionParams struct {
	// UserPassword is needed to open the document.  It may be empty.
	UserPassword string

	// OwnerPassword gives full access to the document.  If empty, the
	// user password is used.
	OwnerPassword string

	// Permissions lists the operations permitted to users who opened the
	// document with the user password.  Use PermAll to grant everything.
	Permissions Perm

	// KeyLength is the key length in bits: a multiple of 8 between 40 and
	// 128 for RC4, or 256 for AES.  The default is 128.
	KeyLength int
}

func (p *EncryptionParams) keyLength() int {
	if p.KeyLength == 0 {
		return 128
	}
	return p.KeyLength
}

func (p *EncryptionParams) validate() error {
	l := p.keyLength()
	if l == 256 || (l >= 40 && l <= 128 && l%8 == 0) {
		return nil
	}
	return fmt.Errorf("invalid encryption key length %d", p.KeyLength)
}

// requiredVersion returns the minimum PDF version for the encryption
// scheme.
func (p *EncryptionParams) requiredVersion() Version {
	switch l := p.keyLength(); {
	case l == 256:
		return V2_0
	case l > 40:
		return V1_4
	default:
		return V1_1
	}
}

// Perm describes which operations are permitted when accessing the document
// with the user password.  The user can always view the document.
type Perm int

// These are the permissions of the standard security handler.
const (
	// PermPrint allows printing the document.
	PermPrint Perm = 1 << iota

	// PermModify allows modifying the contents of the document.
	PermModify

	// PermCopy allows copying text and graphics.
	PermCopy

	// PermAnnotate allows adding or modifying annotations and filling in
	// form fields.
	PermAnnotate

	// PermForms allows filling in form fields, even if PermAnnotate is
	// not granted.
	PermForms

	// PermExtract allows extracting text and graphics for accessibility.
	PermExtract

	// PermAssemble allows inserting, rotating and deleting pages, and
	// creating bookmarks and thumbnails.
	PermAssemble

	// PermPrintHighRes allows printing at the highest quality.
	PermPrintHighRes

	permNext

	// PermAll grants all permissions.
	PermAll = permNext - 1
)

// permBits maps permissions to the corresponding bits in the /P entry.
var permBits = []struct {
	perm Perm
	bit  int32
}{
	{PermPrint, 1 << (3 - 1)},
	{PermModify, 1 << (4 - 1)},
	{PermCopy, 1 << (5 - 1)},
	{PermAnnotate, 1 << (6 - 1)},
	{PermForms, 1 << (9 - 1)},
	{PermExtract, 1 << (10 - 1)},
	{PermAssemble, 1 << (11 - 1)},
	{PermPrintHighRes, 1 << (12 - 1)},
}

// P returns the value of the /P entry in the encryption dictionary.
// All bits are set, except for the two lowest bits and the bits of the
// permissions which are not granted.
func (perm Perm) P() int32 {
	P := int32(-4)
	for _, pb := range permBits {
		if perm&pb.perm == 0 {
			P -= pb.bit
		}
	}
	return P
}

// selectRevision returns the revision of the standard security handler.
// Revision 2 can only express the permissions of the original PDF 1.1
// handler, so it is only used for 40-bit keys when all of the newer
// permissions are granted.
func selectRevision(keyLength int, perm Perm) int {
	const r3Perms = PermForms | PermExtract | PermAssemble | PermPrintHighRes
	switch {
	case keyLength == 256:
		return 6
	case keyLength == 40 && perm&r3Perms == r3Perms:
		return 2
	default:
		return 3
	}
}

// The stdSecHandler implements the writing side of the PDF standard
// security handler, as specified in section 7.6.4 of ISO 32000-2:2020.
type stdSecHandler struct {
	// R specifies the revision of the standard security handler used.
	R int

	// ID is the first element of the ID array in the trailer dictionary.
	ID []byte

	// O is a byte string, based on the owner password, that is used in
	// computing the file encryption key and in determining whether a valid
	// owner password was entered.
	O []byte

	// U is a byte string, based on the user password, that is used in
	// determining whether to prompt the user for a password and, if so,
	// whether a valid user or owner password was entered.
	U []byte

	OE    []byte
	UE    []byte
	Perms []byte

	// P is a set of flags specifying which operations shall be permitted
	// when the document is opened with user access.
	P uint32

	keyBytes int
	key      []byte
}

// newStdSecHandler computes the keys for a new document.  The argument id
// is the first component of the file identifier.
func newStdSecHandler(params *EncryptionParams, id []byte) (*stdSecHandler, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	userPwd := params.UserPassword
	ownerPwd := params.OwnerPassword
	if ownerPwd == "" {
		ownerPwd = userPwd
	}

	length := params.keyLength()
	sec := &stdSecHandler{
		R:        selectRevision(length, params.Permissions),
		ID:       id,
		keyBytes: length / 8,
		P:        uint32(params.Permissions.P()),
	}

	switch sec.R {
	case 2, 3:
		paddedUserPwd, err := padPasswd(userPwd)
		if err != nil {
			return nil, err
		}
		paddedOwnerPwd, err := padPasswd(ownerPwd)
		if err != nil {
			return nil, err
		}
		sec.O = sec.computeO(paddedUserPwd, paddedOwnerPwd)
		sec.key = sec.computeFileKey(paddedUserPwd)
		sec.U = sec.computeU(sec.key)
	case 6:
		utf8UserPwd, err := utf8Passwd(userPwd)
		if err != nil {
			return nil, err
		}
		utf8OwnerPwd, err := utf8Passwd(ownerPwd)
		if err != nil {
			return nil, err
		}
		sec.key = make([]byte, 32)
		_, err = rand.Read(sec.key)
		if err != nil {
			return nil, err
		}
		sec.U, sec.UE, err = sec.computeUAndUE(utf8UserPwd)
		if err != nil {
			return nil, err
		}
		sec.O, sec.OE, err = sec.computeOAndOE(utf8OwnerPwd)
		if err != nil {
			return nil, err
		}
		sec.Perms = sec.computePerms(sec.key)
	}

	return sec, nil
}

// AsDict returns the encryption dictionary.
func (sec *stdSecHandler) AsDict() Dict {
	dict := Dict{
		"Filter": Name("Standard"),
		"R":      Integer(sec.R),
		"Length": Integer(8 * sec.keyBytes),
		"O":      String(sec.O),
		"U":      String(sec.U),
		"P":      Integer(int32(sec.P)),
	}
	switch sec.R {
	case 2:
		dict["V"] = Integer(1)
	case 3:
		dict["V"] = Integer(2)
	case 6:
		dict["V"] = Integer(5)
		dict["StmF"] = Name("StdCF")
		dict["StrF"] = Name("StdCF")
		dict["CF"] = Dict{
			"StdCF": Dict{
				"Length": Integer(32),
				"CFM":    Name("AESV3"),
			},
		}
		dict["OE"] = String(sec.OE)
		dict["UE"] = String(sec.UE)
		dict["Perms"] = String(sec.Perms)
	}
	return dict
}

// keyForRef returns the key used to encrypt strings and streams of the
// object ref.
func (sec *stdSecHandler) keyForRef(ref Reference) []byte {
	if sec.R == 6 {
		return sec.key
	}

	h := md5.New()
	h.Write(sec.key)
	num := ref.Number()
	gen := ref.Generation()
	h.Write([]byte{
		byte(num), byte(num >> 8), byte(num >> 16),
		byte(gen), byte(gen >> 8)})
	l := min(sec.keyBytes+5, 16)
	return h.Sum(nil)[:l]
}

// EncryptBytes encrypts the bytes in buf, which belong to the object ref.
// This function modifies the contents of buf and may return buf.
func (sec *stdSecHandler) EncryptBytes(ref Reference, buf []byte) ([]byte, error) {
	key := sec.keyForRef(ref)
	if sec.R != 6 {
		c, err := rc4.NewCipher(key)
		if err != nil {
			return nil, err
		}
		c.XORKeyStream(buf, buf)
		return buf, nil
	}

	n := len(buf)
	nPad := 16 - n%16
	out := make([]byte, 16+n+nPad) // iv | c(data|padding)

	iv := out[:16]
	_, err := io.ReadFull(rand.Reader, iv)
	if err != nil {
		return nil, err
	}

	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	copy(out[16:], buf)
	for i := 16 + n; i < len(out); i++ {
		out[i] = byte(nPad)
	}
	cbc := cipher.NewCBCEncrypter(c, iv)
	cbc.CryptBlocks(out[16:], out[16:])
	return out, nil
}

// EncryptStream returns a writer which encrypts data for the stream ref and
// writes the result to w.  Closing the returned writer closes w.
func (sec *stdSecHandler) EncryptStream(ref Reference, w io.WriteCloser) (io.WriteCloser, error) {
	key := sec.keyForRef(ref)
	if sec.R != 6 {
		c, err := rc4.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return &cipher.StreamWriter{S: c, W: w}, nil
	}

	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, 16)
	_, err = io.ReadFull(rand.Reader, iv)
	if err != nil {
		return nil, err
	}
	_, err = w.Write(iv)
	if err != nil {
		return nil, err
	}

	return &encryptWriter{
		w:   w,
		cbc: cipher.NewCBCEncrypter(c, iv),
		buf: iv,
	}, nil
}

// Algorithm 2: compute the file encryption key for R <= 4.
func (sec *stdSecHandler) computeFileKey(paddedUserPwd []byte) []byte {
	h := md5.New()
	h.Write(paddedUserPwd)
	h.Write(sec.O)
	h.Write([]byte{
		byte(sec.P), byte(sec.P >> 8), byte(sec.P >> 16), byte(sec.P >> 24)})
	h.Write(sec.ID)
	key := h.Sum(nil)

	if sec.R >= 3 {
		for range 50 {
			h.Reset()
			h.Write(key[:sec.keyBytes])
			key = h.Sum(key[:0])
		}
	}

	return key[:sec.keyBytes]
}

// Algorithm 3: compute O.
func (sec *stdSecHandler) computeO(paddedUserPwd, paddedOwnerPwd []byte) []byte {
	h := md5.New()
	h.Write(paddedOwnerPwd)
	sum := h.Sum(nil)
	if sec.R >= 3 {
		for range 50 {
			h.Reset()
			h.Write(sum)
			sum = h.Sum(sum[:0])
		}
	}
	rc4key := sum[:sec.keyBytes]

	c, _ := rc4.NewCipher(rc4key)
	O := make([]byte, 32)
	c.XORKeyStream(O, paddedUserPwd)
	if sec.R >= 3 {
		key := make([]byte, len(rc4key))
		for i := byte(1); i <= 19; i++ {
			for j := range key {
				key[j] = rc4key[j] ^ i
			}
			c, _ = rc4.NewCipher(key)
			c.XORKeyStream(O, O)
		}
	}
	return O
}

// Algorithm 4/5: compute U.
func (sec *stdSecHandler) computeU(fileKey []byte) []byte {
	U := make([]byte, 32)
	switch sec.R {
	case 2:
		c, _ := rc4.NewCipher(fileKey)
		c.XORKeyStream(U, passwdPad)
	case 3:
		h := md5.New()
		h.Write(passwdPad)
		h.Write(sec.ID)
		U = h.Sum(U[:0])
		c, _ := rc4.NewCipher(fileKey)
		c.XORKeyStream(U, U)

		tmpKey := make([]byte, len(fileKey))
		for i := byte(1); i <= 19; i++ {
			for j := range tmpKey {
				tmpKey[j] = fileKey[j] ^ i
			}
			c, _ = rc4.NewCipher(tmpKey)
			c.XORKeyStream(U, U)
		}
		// The remaining 16 bytes are arbitrary padding.
		U = append(U[:16],
			0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0)
	default:
		panic("invalid security handler revision")
	}

	return U
}

// Algorithm 2.B: Computing a hash (revision 6 and later)
func slowHash(passwd, salt, U []byte) []byte {
	h := sha256.New()
	h.Write(passwd)
	h.Write(salt)
	h.Write(U)
	K := h.Sum(nil)

	K1 := make([]byte, 64*(len(passwd)+64+len(U)))

	for i := 0; i < 64 || K1[len(K1)-1] > byte(i-32); i++ {
		K1 = K1[:0]
		for range 64 {
			K1 = append(K1, passwd...)
			K1 = append(K1, K...)
			K1 = append(K1, U...)
		}

		c, _ := aes.NewCipher(K[:16])
		cbc := cipher.NewCBCEncrypter(c, K[16:32])
		// The length of K1 is a multiple of 64, so this is safe.
		cbc.CryptBlocks(K1, K1)

		// Since (a*256)%3 = (a*255)%3+a%3 = a%3, we can just add all bytes.
		var rem int
		for _, b := range K1[:16] {
			rem += int(b)
		}
		rem %= 3

		var h hash.Hash
		switch rem {
		case 0:
			h = sha256.New()
		case 1:
			h = sha512.New384()
		case 2:
			h = sha512.New()
		}

		h.Write(K1)
		K = h.Sum(K[:0])
	}

	return K[:32]
}

// Algorithm 8: Computing U and UE (Security handlers of revision 6)
func (sec *stdSecHandler) computeUAndUE(utf8UserPwd []byte) ([]byte, []byte, error) {
	buf := make([]byte, 16)
	_, err := rand.Read(buf)
	if err != nil {
		return nil, nil, err
	}

	out := slowHash(utf8UserPwd, buf[:8], nil) // user validation salt
	U := make([]byte, 0, 48)
	U = append(U, out...)
	U = append(U, buf...)

	key := slowHash(utf8UserPwd, buf[8:], nil) // user key salt
	c, _ := aes.NewCipher(key)
	cbc := cipher.NewCBCEncrypter(c, zero16)
	UE := make([]byte, 32)
	cbc.CryptBlocks(UE, sec.key)

	return U, UE, nil
}

// Algorithm 9: Computing O and OE (Security handlers of revision 6)
func (sec *stdSecHandler) computeOAndOE(utf8OwnerPwd []byte) ([]byte, []byte, error) {
	buf := make([]byte, 16)
	_, err := rand.Read(buf)
	if err != nil {
		return nil, nil, err
	}

	out := slowHash(utf8OwnerPwd, buf[:8], sec.U) // owner validation salt
	O := make([]byte, 0, 48)
	O = append(O, out...)
	O = append(O, buf...)

	key := slowHash(utf8OwnerPwd, buf[8:], sec.U) // owner key salt
	c, _ := aes.NewCipher(key)
	cbc := cipher.NewCBCEncrypter(c, zero16)
	OE := make([]byte, 32)
	cbc.CryptBlocks(OE, sec.key)

	return O, OE, nil
}

// Algorithm 10: Computing the Perms value (Security handlers of revision 6)
func (sec *stdSecHandler) computePerms(fileKey []byte) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf, sec.P)
	buf[4] = 0xFF
	buf[5] = 0xFF
	buf[6] = 0xFF
	buf[7] = 0xFF
	buf[8] = 'T'
	buf[9] = 'a'
	buf[10] = 'd'
	buf[11] = 'b'

	c, _ := aes.NewCipher(fileKey)
	c.Encrypt(buf, buf)
	return buf
}

var errInvalidPassword = errors.New("invalid password")

func utf8Passwd(passwd string) ([]byte, error) {
	prepped, err := stringprep.SASLprep.Prepare(passwd)
	if err != nil {
		return nil, errInvalidPassword
	}
	buf := []byte(prepped)
	if len(buf) > 127 {
		buf = buf[:127]
	}
	return buf, nil
}

// padPasswd returns the password, encoded in PDFDocEncoding and padded or
// truncated to 32 bytes.
func padPasswd(passwd string) ([]byte, error) {
	buf, ok := pdfDocEncode(passwd)
	if !ok {
		return nil, errInvalidPassword
	}

	padded := make([]byte, 32)
	n := copy(padded, buf)
	copy(padded[n:], passwdPad)

	return padded, nil
}

var passwdPad = []byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}

var zero16 = []byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

type encryptWriter struct {
	w   io.WriteCloser
	cbc cipher.BlockMode
	buf []byte // must have length cbc.BlockSize()
	pos int
}

func (w *encryptWriter) Write(p []byte) (int, error) {
	n := 0
	for len(p) > 0 {
		k := copy(w.buf[w.pos:], p)
		n += k
		w.pos += k
		p = p[k:]

		if w.pos >= len(w.buf) {
			w.cbc.CryptBlocks(w.buf, w.buf)
			_, err := w.w.Write(w.buf)
			if err != nil {
				return n, err
			}
			w.pos = 0
		}
	}
	return n, nil
}

func (w *encryptWriter) Close() error {
	kPad := 16 - w.pos
	for i := w.pos; i < len(w.buf); i++ {
		w.buf[i] = byte(kPad)
	}

	w.cbc.CryptBlocks(w.buf, w.buf)
	_, err := w.w.Write(w.buf)
	if err != nil {
		return err
	}

	return w.w.Close()
}

// checkCrypto reports whether the primitives needed for the given key
// length are available.
func checkCrypto(c CryptoSupport, keyLength int) bool {
	if keyLength == 256 {
		return c.AES && c.SHA256
	}
	return c.MD5 && c.RC4
}
