// AngelaMos | 2026
// errors.go

package importer

import "errors"

var (
	ErrFetch         = errors.New("attachment fetch failed")
	ErrFormat        = errors.New("unreadable spreadsheet")
	ErrAmbiguousUser = errors.New("more than one user matches the submitted name")
	ErrInvalidRow    = errors.New("invalid spreadsheet row")
)
