package signoff

import (
	"regexp"
	"strings"
)

// Trailer is one parsed Signed-off-by line.
type Trailer struct {
	Name  string
	Email string
}

// trailerRE matches "Signed-off-by: Name <email>" with tolerance for
// surrounding whitespace. Both a name token and a bracketed email
// containing "@" are required; anything else is not a trailer.
var trailerRE = regexp.MustCompile(`^\s*Signed-off-by:\s+(?P<name>.*\S)\s+<(?P<email>[^<>\s]+@[^<>\s]+)>\s*$`)

// ParseTrailers scans a full commit message for sign-off trailers. Lines
// that look almost like a trailer but lack a name or a bracketed email are
// ignored, not errors. The returned slice preserves message order and may
// be empty.
func ParseTrailers(message string) []Trailer {
	var trailers []Trailer
	for _, line := range strings.Split(message, "\n") {
		m := trailerRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		trailers = append(trailers, Trailer{
			Name:  m[trailerRE.SubexpIndex("name")],
			Email: m[trailerRE.SubexpIndex("email")],
		})
	}
	return trailers
}
