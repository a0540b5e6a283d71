package tiles

import (
	"path/filepath"
	"strconv"
)

// Coordinate addresses a single tile in the z/x/y directory tree. It is
// derived from the request and never persisted.
type Coordinate struct {
	Z   int
	X   int
	Y   int
	Ext string
}

var supportedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpg",
	"jpeg": "image/jpeg",
}

// SupportedExtension reports whether ext is one of the servable tile formats
func SupportedExtension(ext string) bool {
	_, ok := supportedExtensions[ext]
	return ok
}

// ContentType returns the MIME type for the coordinate's extension
func (c Coordinate) ContentType() string {
	return supportedExtensions[c.Ext]
}

// Path maps the coordinate deterministically onto the tile tree:
// <baseDir>/<z>/<x>/<y>.<ext>
func (c Coordinate) Path(baseDir string) string {
	return filepath.Join(baseDir, strconv.Itoa(c.Z), strconv.Itoa(c.X), strconv.Itoa(c.Y)+"."+c.Ext)
}
