package ingest

import (
	"bytes"

	"github.com/evanoberholster/imagemeta"
)

// Coordinates reads GPS latitude and longitude from a photo's EXIF block.
// ok is false when the photo carries no position.
func Coordinates(data []byte) (lat, lon float64, ok bool) {
	exif, err := imagemeta.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	lat, lon = exif.GPS.Latitude(), exif.GPS.Longitude()
	if lat == 0 && lon == 0 {
		return 0, 0, false
	}
	return lat, lon, true
}
