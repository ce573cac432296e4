// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

package ascii85

import (
	"bufio"
	"bytes"
	"encoding/ascii85"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func encode(t testing.TB, in []byte, width int) string {
	t.Helper()
	buf := &bytes.Buffer{}
	enc := Encode(withDummyClose{buf}, width)
	_, err := enc.Write(in)
	if err != nil {
		t.Fatal(err)
	}
	err = enc.Close()
	if err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func decode(t testing.TB, s string) []byte {
	t.Helper()
	body, ok := strings.CutSuffix(s, "~>")
	if !ok {
		t.Fatalf("missing EOD marker: %q", s)
	}
	dec := ascii85.NewDecoder(strings.NewReader(body))
	out, err := io.ReadAll(dec)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestEncode(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"", "~>"},
		{"\000\000\000\000", "z~>"},
		{"Man ", "9jqo^~>"},
		{"Man", "9jqo~>"},
		{"M", "9`~>"},
	}
	for _, tc := range cases {
		got := encode(t, []byte(tc.in), 79)
		if got != tc.out {
			t.Errorf("%q: got %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestLineWidth(t *testing.T) {
	in := bytes.Repeat([]byte("Hello, World! "), 100)
	for _, width := range []int{5, 10, 79, 80} {
		out := encode(t, in, width)
		scanner := bufio.NewScanner(strings.NewReader(out))
		for scanner.Scan() {
			if l := len(scanner.Text()); l > width {
				t.Errorf("width %d: line of length %d", width, l)
			}
		}
		if d := cmp.Diff(decode(t, out), in); d != "" {
			t.Errorf("width %d: (-got +want)\n%s", width, d)
		}
	}
}

func FuzzWriter(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("Hello world!"))
	f.Add([]byte("\000"))
	f.Add([]byte("\000\000\000\000\001"))

	f.Fuzz(func(t *testing.T, in []byte) {
		out := encode(t, in, 40)
		got := decode(t, out)
		if !bytes.Equal(got, in) {
			t.Errorf("in=%q, out=%q", in, got)
		}
	})
}

func BenchmarkWriter(b *testing.B) {
	data := make([]byte, 1<<16)
	for i := range data {
		data[i] = byte(i * 7)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc := Encode(withDummyClose{io.Discard}, 79)
		_, _ = enc.Write(data)
		_ = enc.Close()
	}
}

type withDummyClose struct {
	io.Writer
}

func (w withDummyClose) Close() error {
	return nil
}
