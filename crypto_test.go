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
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rc4"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	buf, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

var testFileID = []byte{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
}

var testData = []byte{0x00, 0xAA, 0xFF, 0x55, 0xCC, 0x33, 0xF0}

const zeroPad = "00000000000000000000000000000000"

var encryptionTestCases = []struct {
	name   string
	obj    uint32
	params EncryptionParams
	R      int
	P      int32
	O, U   string
	out    string
}{
	{
		name: "128-bit default",
		obj:  1,
		params: EncryptionParams{
			UserPassword:  "TestUserPassword",
			OwnerPassword: "TestOwnerPassword",
			Permissions:   PermAll,
		},
		R:   3,
		P:   -4,
		O:   "D9A98017F0500EF9B69738641C9B4CBA1229EDC3F2151BC6C9C4FB07B1CB315E",
		U:   "D3EF424BFEA2E434000E1A74941CC873" + zeroPad,
		out: "24 07 85 F7 87 31 90",
	},
	{
		name: "128-bit second object",
		obj:  2,
		params: EncryptionParams{
			UserPassword:  "TestUserPassword",
			OwnerPassword: "TestOwnerPassword",
			Permissions:   PermAll,
		},
		R:   3,
		P:   -4,
		O:   "D9A98017F0500EF9B69738641C9B4CBA1229EDC3F2151BC6C9C4FB07B1CB315E",
		U:   "D3EF424BFEA2E434000E1A74941CC873" + zeroPad,
		out: "E3 CB B2 55 D9 26 55",
	},
	{
		name: "40-bit restricted",
		obj:  3,
		params: EncryptionParams{
			UserPassword:  "TestUserPassword",
			OwnerPassword: "TestOwnerPassword",
			Permissions:   PermAll &^ (PermPrint | PermModify | PermCopy | PermAnnotate),
			KeyLength:     40,
		},
		R:   2,
		P:   -64,
		O:   "3EE8C4000CA44B2645EED029C9EA7D4FC63C6D9B89349E8FA5A40C7691AB96B5",
		U:   "3E65D0090746C4C37C5EF23C1BDB6323E00C24C4B2D744DD3BFB654CD58591A1",
		out: "66 EE A7 93 C4 B1 B4",
	},
	{
		name: "40-bit revision 3",
		obj:  4,
		params: EncryptionParams{
			UserPassword:  "TestUserPassword",
			OwnerPassword: "TestOwnerPassword",
			Permissions:   PermAll &^ (PermForms | PermExtract | PermAssemble | PermPrintHighRes),
			KeyLength:     40,
		},
		R:   3,
		P:   -3844,
		O:   "8D4BCA4F4AB2BAB4E38F161D61F937EC50BE5EB30C2DC05EA409D252CD695E55",
		U:   "0F01171E22C7FB27B079C132BA4277DE" + zeroPad,
		out: "8E 3C D2 05 50 48 82",
	},
	{
		name: "128-bit restricted",
		obj:  5,
		params: EncryptionParams{
			UserPassword:  "TestUserPassword",
			OwnerPassword: "TestOwnerPassword",
			Permissions:   PermAll &^ (PermPrint | PermCopy | PermForms | PermAssemble),
		},
		R:   3,
		P:   -1304,
		O:   "D9A98017F0500EF9B69738641C9B4CBA1229EDC3F2151BC6C9C4FB07B1CB315E",
		U:   "62F0E4D8641D482E0F8E71A89270045A" + zeroPad,
		out: "F7 85 4F B0 50 5C DF",
	},
	{
		name: "40-bit different passwords",
		obj:  6,
		params: EncryptionParams{
			UserPassword:  "ADifferentUserPassword",
			OwnerPassword: "ADifferentOwnerPassword",
			Permissions:   PermAll,
			KeyLength:     40,
		},
		R:   2,
		P:   -4,
		O:   "D11C233C65E9DC872E858ABBD8B62198771167ADCE7AB8DC7AE0A1A7E21A1E25",
		U:   "6F449167DB8DDF0D2DF4602DDBBA97ABF9A9101F632CC16AB0BE74EB9500B469",
		out: "27 AC B1 6C 42 E0 A8",
	},
	{
		name: "40-bit empty owner password",
		obj:  7,
		params: EncryptionParams{
			UserPassword: "ADifferentUserPassword",
			Permissions:  PermAll,
			KeyLength:    40,
		},
		R:   2,
		P:   -4,
		O:   "5163AAF3EE74C76D7C223593A84C8702FEA8AA4493E4933FF5B5A5BBB20AE4BB",
		U:   "42DDF1C1BF3AB04786D5038E7B0A723AE614D944E1DE91A922FC54F5F2345E00",
		out: "EC 2E 5D C2 7F AD 58",
	},
	{
		name: "128-bit different passwords restricted",
		obj:  8,
		params: EncryptionParams{
			UserPassword:  "ADifferentUserPassword",
			OwnerPassword: "ADifferentOwnerPassword",
			Permissions:   PermAll &^ (PermModify | PermAnnotate | PermExtract | PermPrintHighRes),
		},
		R:   3,
		P:   -2604,
		O:   "F83CA049FAA2F774F8541F25E746A92EE2A7F060C46C91C693E673BF18FF7B36",
		U:   "88A4C58F5385B5F08FACA0636D790EDF" + zeroPad,
		out: "77 54 67 A5 CC 73 DE",
	},
	{
		name: "128-bit nothing permitted",
		obj:  9,
		params: EncryptionParams{
			UserPassword: "ADifferentUserPassword",
			Permissions:  0,
		},
		R:   3,
		P:   -3904,
		O:   "3EEB3FA5594CBD935BFB2F83FB184DD41FBCD7C36A04F1FFD0899B0DFFCFF96B",
		U:   "D972B72DD2633F613B0DDB7511C719C5" + zeroPad,
		out: "0C AD 49 C7 E5 05 B8",
	},
}

func TestSecurityHandlerVectors(t *testing.T) {
	for _, tc := range encryptionTestCases {
		t.Run(tc.name, func(t *testing.T) {
			params := tc.params
			sec, err := newStdSecHandler(&params, testFileID)
			if err != nil {
				t.Fatal(err)
			}

			if sec.R != tc.R {
				t.Errorf("R = %d, want %d", sec.R, tc.R)
			}
			if int32(sec.P) != tc.P {
				t.Errorf("P = %d, want %d", int32(sec.P), tc.P)
			}
			if d := cmp.Diff(sec.O, unhex(t, tc.O)); d != "" {
				t.Errorf("O: (-got +want)\n%s", d)
			}
			if d := cmp.Diff(sec.U, unhex(t, tc.U)); d != "" {
				t.Errorf("U: (-got +want)\n%s", d)
			}

			out, err := sec.EncryptBytes(NewReference(tc.obj, 0), bytes.Clone(testData))
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(out, unhex(t, tc.out)); d != "" {
				t.Errorf("data: (-got +want)\n%s", d)
			}
		})
	}
}

func TestEncryptSingleBytes(t *testing.T) {
	params := &EncryptionParams{
		UserPassword:  "TestUserPassword",
		OwnerPassword: "TestOwnerPassword",
		Permissions:   PermAll,
	}
	sec, err := newStdSecHandler(params, testFileID)
	if err != nil {
		t.Fatal(err)
	}
	ref := NewReference(1, 0)
	for _, tc := range []struct{ in, out byte }{
		{0x00, 0x24},
		{0xAA, 0x8E},
		{0xFF, 0xDB},
	} {
		out, err := sec.EncryptBytes(ref, []byte{tc.in})
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 1 || out[0] != tc.out {
			t.Errorf("%02X -> % X, want %02X", tc.in, out, tc.out)
		}
	}
}

// TestEncryptStream checks that stream encryption agrees with string
// encryption.
func TestEncryptStream(t *testing.T) {
	for _, tc := range encryptionTestCases {
		t.Run(tc.name, func(t *testing.T) {
			params := tc.params
			sec, err := newStdSecHandler(&params, testFileID)
			if err != nil {
				t.Fatal(err)
			}
			buf := &bytes.Buffer{}
			w, err := sec.EncryptStream(NewReference(tc.obj, 0), withDummyClose{buf})
			if err != nil {
				t.Fatal(err)
			}
			// write in two parts, to check that the cipher state is kept
			_, err = w.Write(testData[:3])
			if err != nil {
				t.Fatal(err)
			}
			_, err = w.Write(testData[3:])
			if err != nil {
				t.Fatal(err)
			}
			err = w.Close()
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(buf.Bytes(), unhex(t, tc.out)); d != "" {
				t.Errorf("(-got +want)\n%s", d)
			}
		})
	}
}

func TestPermBits(t *testing.T) {
	cases := []struct {
		perm Perm
		P    int32
	}{
		{PermAll, -4},
		{PermAll &^ (PermPrint | PermModify | PermCopy | PermAnnotate), -64},
		{PermAll &^ (PermForms | PermExtract | PermAssemble | PermPrintHighRes), -3844},
		{0, -3904},
	}
	for _, tc := range cases {
		if got := tc.perm.P(); got != tc.P {
			t.Errorf("%08b: P = %d, want %d", tc.perm, got, tc.P)
		}
	}
}

func TestSelectRevision(t *testing.T) {
	cases := []struct {
		keyLength int
		perm      Perm
		R         int
	}{
		{40, PermAll, 2},
		{40, PermPrint | PermForms | PermExtract | PermAssemble | PermPrintHighRes, 2},
		{40, PermAll &^ PermForms, 3},
		{40, PermAll &^ PermPrintHighRes, 3},
		{48, PermAll, 3},
		{128, PermAll, 3},
		{256, PermAll, 6},
	}
	for _, tc := range cases {
		if got := selectRevision(tc.keyLength, tc.perm); got != tc.R {
			t.Errorf("selectRevision(%d, %08b) = %d, want %d",
				tc.keyLength, tc.perm, got, tc.R)
		}
	}
}

func TestEncryptionDict(t *testing.T) {
	params := &EncryptionParams{
		UserPassword: "user",
		Permissions:  PermAll,
		KeyLength:    40,
	}
	sec, err := newStdSecHandler(params, testFileID)
	if err != nil {
		t.Fatal(err)
	}
	dict := sec.AsDict()
	want := Dict{
		"Filter": Name("Standard"),
		"V":      Integer(1),
		"R":      Integer(2),
		"Length": Integer(40),
		"O":      String(sec.O),
		"U":      String(sec.U),
		"P":      Integer(-4),
	}
	if d := cmp.Diff(dict, want); d != "" {
		t.Errorf("(-got +want)\n%s", d)
	}

	params.KeyLength = 128
	sec, err = newStdSecHandler(params, testFileID)
	if err != nil {
		t.Fatal(err)
	}
	dict = sec.AsDict()
	if dict["V"] != Integer(2) || dict["R"] != Integer(3) || dict["Length"] != Integer(128) {
		t.Errorf("wrong 128-bit encryption dict: %s", dict)
	}
}

func TestKeyLengthValidation(t *testing.T) {
	for _, l := range []int{32, 41, 136, 192, 512} {
		params := &EncryptionParams{KeyLength: l}
		_, err := newStdSecHandler(params, testFileID)
		if err == nil {
			t.Errorf("key length %d: missing error", l)
		}
	}
	for _, l := range []int{0, 40, 48, 56, 128, 256} {
		params := &EncryptionParams{KeyLength: l}
		if err := params.validate(); err != nil {
			t.Errorf("key length %d: %v", l, err)
		}
	}
}

func TestAES256(t *testing.T) {
	params := &EncryptionParams{
		UserPassword:  "secret",
		OwnerPassword: "very secret",
		Permissions:   PermPrint,
		KeyLength:     256,
	}
	sec, err := newStdSecHandler(params, testFileID)
	if err != nil {
		t.Fatal(err)
	}
	if sec.R != 6 {
		t.Fatalf("R = %d, want 6", sec.R)
	}
	if len(sec.U) != 48 || len(sec.O) != 48 || len(sec.UE) != 32 || len(sec.OE) != 32 || len(sec.Perms) != 16 {
		t.Fatalf("wrong lengths: U %d, O %d, UE %d, OE %d, Perms %d",
			len(sec.U), len(sec.O), len(sec.UE), len(sec.OE), len(sec.Perms))
	}

	// the user validation salt must reproduce the hash in U
	hash := slowHash([]byte("secret"), sec.U[32:40], nil)
	if !bytes.Equal(hash, sec.U[:32]) {
		t.Error("U does not validate the user password")
	}

	// decrypting UE with the intermediate user key gives the file key
	key := slowHash([]byte("secret"), sec.U[40:48], nil)
	c, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	fileKey := make([]byte, 32)
	cipher.NewCBCDecrypter(c, zero16).CryptBlocks(fileKey, sec.UE)
	if !bytes.Equal(fileKey, sec.key) {
		t.Error("UE does not contain the file key")
	}

	// round trip of a string
	plain := []byte("Hello, World!")
	enc, err := sec.EncryptBytes(NewReference(7, 0), bytes.Clone(plain))
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 32 {
		t.Fatalf("encrypted length %d, want 32", len(enc))
	}
	c, _ = aes.NewCipher(sec.key)
	dec := make([]byte, 16)
	cipher.NewCBCDecrypter(c, enc[:16]).CryptBlocks(dec, enc[16:])
	nPad := int(dec[15])
	if d := cmp.Diff(dec[:16-nPad], plain); d != "" {
		t.Errorf("(-got +want)\n%s", d)
	}
}

func TestEncryptedDocument(t *testing.T) {
	buf := &bytes.Buffer{}
	opt := &Options{
		FileID: [2][]byte{testFileID, testFileID},
		Encryption: &EncryptionParams{
			UserPassword:  "TestUserPassword",
			OwnerPassword: "TestOwnerPassword",
			Permissions:   PermAll &^ (PermPrint | PermModify | PermCopy | PermAnnotate),
			KeyLength:     40,
		},
		DisableCompression: true,
	}
	doc, err := NewDocument(buf, opt)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.IsEncrypted() {
		t.Fatal("document is not encrypted")
	}

	stm := NewStream(nil, StreamDefault, nil)
	stm.SetData(testData)
	ref, err := doc.Register(stm)
	if err != nil {
		t.Fatal(err)
	}
	title := NewDictObject(Dict{"Title": String("plain text")})
	titleRef, err := doc.Register(title)
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Close()
	if err != nil {
		t.Fatal(err)
	}
	out := buf.Bytes()

	// the stream data is encrypted with the key of the stream object
	c, err := rc4.NewCipher(doc.sec.keyForRef(ref))
	if err != nil {
		t.Fatal(err)
	}
	enc := make([]byte, len(testData))
	c.XORKeyStream(enc, testData)
	if !bytes.Contains(out, enc) {
		t.Error("encrypted stream data not found")
	}
	if bytes.Contains(out, []byte("plain text")) {
		t.Errorf("string in object %s was not encrypted", titleRef)
	}

	// the encryption dictionary is not encrypted
	var encDict bytes.Buffer
	err = String(doc.sec.O).PDF(&encDict)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, encDict.Bytes()) {
		t.Error("/O entry not found in clear text")
	}
	if !bytes.Contains(out, []byte("/Encrypt "+Format(doc.encDict.ref))) {
		t.Error("trailer does not reference the encryption dictionary")
	}
}

func TestEncryptionUnavailable(t *testing.T) {
	params := &EncryptionParams{UserPassword: "x"}

	opt := &Options{
		Encryption: params,
		Crypto:     CryptoSupport{AES: true, SHA256: true},
	}
	doc, err := NewDocument(&bytes.Buffer{}, opt)
	if err != nil {
		t.Fatal(err)
	}
	if doc.IsEncrypted() {
		t.Error("document encrypted without RC4")
	}

	opt.RequireEncryption = true
	_, err = NewDocument(&bytes.Buffer{}, opt)
	if !errors.Is(err, ErrEncryptionUnavailable) {
		t.Errorf("got %v, want %v", err, ErrEncryptionUnavailable)
	}
}

func TestEncryptionFixedVersion(t *testing.T) {
	opt := &Options{
		Version:      V1_3,
		FixedVersion: true,
		Encryption:   &EncryptionParams{KeyLength: 128},
	}
	_, err := NewDocument(&bytes.Buffer{}, opt)
	var vErr *VersionError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want a VersionError", err)
	}

	opt.FixedVersion = false
	doc, err := NewDocument(&bytes.Buffer{}, opt)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version() != V1_4 {
		t.Errorf("version %s, want 1.4", doc.Version())
	}
}
