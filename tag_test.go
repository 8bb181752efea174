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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValueFormat(t *testing.T) {
	cases := []struct {
		val Value
		out string
	}{
		{String("hello"), "hello"},
		{String(""), ""},
		{Integer(0), "0"},
		{Integer(-17), "-17"},
		{Real(0), "0.0"},
		{Real(1), "1.0"},
		{Real(0.125), "0.125"},
		{Real(-2.5), "-2.5"},
		{Handle(0x1F), "1F"},
		{Handle(255), "FF"},
		{Binary{0xDE, 0xAD}, "DEAD"},
	}
	for _, test := range cases {
		out := string(test.val.DXF(nil))
		if out != test.out {
			t.Errorf("%#v: got %q, want %q", test.val, out, test.out)
		}
	}
}

func TestParseHandle(t *testing.T) {
	cases := []struct {
		in  string
		out Handle
		ok  bool
	}{
		{"0", 0, true},
		{"1F", 0x1F, true},
		{"1f", 0x1F, true},
		{"FFFF", 0xFFFF, true},
		{"", 0, false},
		{"XYZ", 0, false},
	}
	for _, test := range cases {
		h, err := ParseHandle(test.in)
		if (err == nil) != test.ok {
			t.Errorf("%q: unexpected err = %v", test.in, err)
			continue
		}
		if h != test.out {
			t.Errorf("%q: got %s, want %s", test.in, h, test.out)
		}
	}
}

func scanTags(t *testing.T, src string) Tags {
	t.Helper()
	ts, err := loadTagStream([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return ts.tags
}

func TestScanTags(t *testing.T) {
	src := "  0\nLINE\n  8\nWalls\n 62\n5\n 40\n1.5\n  5\n2A\n"
	got := scanTags(t, src)
	want := Tags{
		{Code: 0, Value: String("LINE")},
		{Code: 8, Value: String("Walls")},
		{Code: 62, Value: Integer(5)},
		{Code: 40, Value: Real(1.5)},
		{Code: 5, Value: Handle(0x2A)},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("tags differ (-want +got):\n%s", d)
	}
}

func TestScanPoints(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Tags
	}{
		{
			name: "3d point",
			src:  " 10\n1.0\n 20\n2.0\n 30\n3.0\n",
			want: Tags{{Code: 10, Value: Point{X: 1, Y: 2, Z: 3}}},
		},
		{
			name: "flat point",
			src:  " 10\n1.0\n 20\n2.0\n 62\n7\n",
			want: Tags{
				{Code: 10, Value: Point{X: 1, Y: 2, Flat: true}},
				{Code: 62, Value: Integer(7)},
			},
		},
		{
			name: "flat point at end of input",
			src:  " 10\n1.0\n 20\n2.0\n",
			want: Tags{{Code: 10, Value: Point{X: 1, Y: 2, Flat: true}}},
		},
		{
			name: "consecutive points",
			src:  " 10\n1.0\n 20\n2.0\n 11\n3.0\n 21\n4.0\n",
			want: Tags{
				{Code: 10, Value: Point{X: 1, Y: 2, Flat: true}},
				{Code: 11, Value: Point{X: 3, Y: 4, Flat: true}},
			},
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			got := scanTags(t, test.src)
			if d := cmp.Diff(test.want, got); d != "" {
				t.Errorf("tags differ (-want +got):\n%s", d)
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bad group code", "abc\nLINE\n"},
		{"code out of range", "9999\nLINE\n"},
		{"unterminated tag", "  0"},
		{"bad integer", " 62\nred\n"},
		{"bad handle", "  5\nnope\n"},
		{"missing y component", " 10\n1.0\n 62\n7\n"},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			_, err := loadTagStream([]byte(test.src))
			if err == nil {
				t.Error("missing error")
			}
		})
	}
}

func TestScanSkipsComments(t *testing.T) {
	src := "999\nwritten by hand\n  0\nLINE\n999\nmore notes\n 62\n1\n"
	got := scanTags(t, src)
	want := Tags{
		{Code: 0, Value: String("LINE")},
		{Code: 62, Value: Integer(1)},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("tags differ (-want +got):\n%s", d)
	}
}

func TestScanStopsAtEOF(t *testing.T) {
	src := "  0\nEOF\n 62\n1\n"
	got := scanTags(t, src)
	if len(got) != 0 {
		t.Errorf("got %d tags after EOF marker", len(got))
	}
}
