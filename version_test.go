// seehuhn.de/go/dxf - a library for reading and writing DXF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package dxf

import "testing"

func TestVersion(t *testing.T) {
	cases := []struct {
		in  string
		out Version
		ok  bool
	}{
		{"AC1009", R12, true},
		{"AC1012", R13, true},
		{"AC1014", R14, true},
		{"AC1015", R2000, true},
		{"AC1018", R2004, true},
		{"AC1021", R2007, true},
		{"AC1024", R2010, true},
		{"AC1027", R2013, true},
		{"AC1032", R2018, true},
		{"R12", R12, true},
		{"R2018", R2018, true},
		{"", 0, false},
		{"AC1006", 0, false},
		{"AC9999", 0, false},
	}
	for _, test := range cases {
		v, err := ParseVersion(test.in)
		if (err == nil) != test.ok {
			t.Errorf("%q: unexpected err = %s", test.in, err)
			continue
		}
		if v != test.out {
			t.Errorf("%q: wrong version %d != %d", test.in, int(v), int(test.out))
		}
	}
}

func TestVersionToken(t *testing.T) {
	for v := R12; v < tooHighVersion; v++ {
		tok, err := v.Token()
		if err != nil {
			t.Errorf("%s: %v", v, err)
			continue
		}
		back, err := ParseVersion(tok)
		if err != nil || back != v {
			t.Errorf("%s: token %q does not parse back", v, tok)
		}
	}
	if _, err := Version(0).Token(); err == nil {
		t.Error("missing error for invalid version")
	}
	if _, err := tooHighVersion.Token(); err == nil {
		t.Error("missing error for out of range version")
	}
}
