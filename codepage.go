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
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Files written before R2007 store text in the 8-bit code page named by
// the $DWGCODEPAGE header variable ("ANSI_1252" etc.); R2007 and later
// files are UTF-8 throughout.

var codePages = map[string]encoding.Encoding{
	"874":  charmap.Windows874,
	"932":  japanese.ShiftJIS,
	"936":  simplifiedchinese.GBK,
	"949":  korean.EUCKR,
	"950":  traditionalchinese.Big5,
	"1250": charmap.Windows1250,
	"1251": charmap.Windows1251,
	"1252": charmap.Windows1252,
	"1253": charmap.Windows1253,
	"1254": charmap.Windows1254,
	"1255": charmap.Windows1255,
	"1256": charmap.Windows1256,
	"1257": charmap.Windows1257,
	"1258": charmap.Windows1258,
}

// codePageEncoding maps a $DWGCODEPAGE token like "ANSI_1252" to its
// encoding.  Unknown tokens fall back to Windows-1252, the code page
// AutoCAD assumes when the header variable is missing.
func codePageEncoding(token string) encoding.Encoding {
	digits := token
	if idx := strings.IndexByte(token, '_'); idx >= 0 {
		digits = token[idx+1:]
	}
	if enc, ok := codePages[digits]; ok {
		return enc
	}
	return charmap.Windows1252
}

// codePageToken returns the $DWGCODEPAGE token for the code page used by
// pre-R2007 output.  This library always writes Windows-1252 for legacy
// versions.
func codePageToken() string {
	return "ANSI_1252"
}

// stringDecoder returns the string decoding function for a document with
// the given version and $DWGCODEPAGE token.
func stringDecoder(version Version, codePage string) func([]byte) (string, error) {
	if version >= R2007 {
		return nil // UTF-8, no transformation needed
	}
	dec := codePageEncoding(codePage).NewDecoder()
	return func(b []byte) (string, error) {
		if isASCII(b) {
			return string(b), nil
		}
		s, err := dec.Bytes(b)
		if err != nil {
			return "", err
		}
		return string(s), nil
	}
}

// stringEncoder returns the function used to encode strings when writing
// a document for the given target version.  Characters which cannot be
// represented in the legacy code page are replaced by "?".
func stringEncoder(version Version) func(string) []byte {
	if version >= R2007 {
		return func(s string) []byte { return []byte(s) }
	}
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	return func(s string) []byte {
		if isASCII([]byte(s)) {
			return []byte(s)
		}
		b, err := enc.Bytes([]byte(s))
		if err != nil {
			return []byte(strings.Map(func(r rune) rune {
				if r < 128 {
					return r
				}
				return '?'
			}, s))
		}
		return b
	}
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// detectParameters scans the start of an ASCII DXF byte stream for the
// $ACADVER and $DWGCODEPAGE header variables without decoding the whole
// file.  Missing variables yield R12 and "ANSI_1252".
func detectParameters(data []byte) (Version, string) {
	version := R12
	codePage := "ANSI_1252"

	if idx := bytes.Index(data, []byte("$ACADVER")); idx >= 0 {
		if tok := scanHeaderValue(data[idx:]); tok != "" {
			if v, err := ParseVersion(tok); err == nil {
				version = v
			}
		}
	}
	if idx := bytes.Index(data, []byte("$DWGCODEPAGE")); idx >= 0 {
		if tok := scanHeaderValue(data[idx:]); tok != "" {
			codePage = tok
		}
	}
	return version, codePage
}

// scanHeaderValue returns the value line of the tag following a header
// variable name.  data starts at the variable name.
func scanHeaderValue(data []byte) string {
	lines := bytes.SplitN(data, []byte("\n"), 4)
	if len(lines) < 3 {
		return ""
	}
	return string(bytes.TrimSpace(lines[2]))
}
