package domain

import "errors"

// Failure modes surfaced to the user. Unknown layer ids are deliberately
// not represented here: a stale id means the caller is out of date, so
// the board treats those operations as silent no-ops.
var (
	// ErrInvalidAsset marks a source image that could not be read or decoded.
	ErrInvalidAsset = errors.New("invalid asset reference")

	// ErrNoLayersToExport is returned when an export is requested with no
	// fixed layers on the board.
	ErrNoLayersToExport = errors.New("no fixed layers to export")

	// ErrExportDecode aborts a whole export when any fixed layer's source
	// image fails to decode. No partial output is produced.
	ErrExportDecode = errors.New("export image decode failed")
)
