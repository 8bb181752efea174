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
	"encoding/binary"
	"errors"
	"image"

	"golang.org/x/image/bmp"
)

// ErrNoThumbnail is returned by [Document.ThumbnailImage] when the
// document has no preview image.
var ErrNoThumbnail = errors.New("document has no thumbnail")

// ThumbnailImage decodes the document's preview image.  The
// THUMBNAILIMAGE section stores a Windows bitmap without the leading
// file header; the header is reconstructed before decoding.
func (d *Document) ThumbnailImage() (image.Image, error) {
	data := d.Thumbnail
	if len(data) == 0 {
		return nil, ErrNoThumbnail
	}

	if len(data) >= 2 && data[0] == 'B' && data[1] == 'M' {
		return bmp.Decode(bytes.NewReader(data))
	}
	if len(data) < 40 {
		return nil, errors.New("thumbnail data too short")
	}

	infoSize := binary.LittleEndian.Uint32(data[0:4])
	bitCount := binary.LittleEndian.Uint16(data[14:16])
	clrUsed := binary.LittleEndian.Uint32(data[32:36])

	paletteLen := clrUsed
	if paletteLen == 0 && bitCount <= 8 {
		paletteLen = 1 << bitCount
	}
	dataOffset := 14 + infoSize + 4*paletteLen

	hdr := make([]byte, 14)
	hdr[0] = 'B'
	hdr[1] = 'M'
	binary.LittleEndian.PutUint32(hdr[2:6], uint32(len(data))+14)
	binary.LittleEndian.PutUint32(hdr[10:14], dataOffset)

	return bmp.Decode(bytes.NewReader(append(hdr, data...)))
}

// SetThumbnail stores an image as the document's preview.  The image
// is encoded as a Windows bitmap with the file header stripped, the
// form the THUMBNAILIMAGE section uses.
func (d *Document) SetThumbnail(img image.Image) error {
	buf := &bytes.Buffer{}
	if err := bmp.Encode(buf, img); err != nil {
		return err
	}
	data := buf.Bytes()
	if len(data) < 14 {
		return errors.New("bitmap encoding failed")
	}
	d.Thumbnail = data[14:]
	return nil
}
