// Package naming derives identifiers from requirement strings.
// Routes name pages, pages name components, and components name hooks;
// every function here is pure and safe for concurrent use.
package naming

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRoute is returned when a route has no base segment.
var ErrMalformedRoute = errors.New("malformed route")

// DetailSuffix is appended to route names of detail pages.
const DetailSuffix = "Detail"

// BaseSegment returns the first path segment after the leading slash
// ("/trainers/:id" -> "trainers").
func BaseSegment(route string) (string, error) {
	parts := strings.Split(route, "/")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: %q has no base segment", ErrMalformedRoute, route)
	}
	return parts[1], nil
}

// PluralDisplayName converts a base segment to a display name with no spaces
// ("trainer-profiles" -> "TrainerProfiles").
func PluralDisplayName(base string) string {
	return strings.Join(strings.Fields(StartCase(base)), "")
}

// SingularDisplayName drops one trailing "s".
//
// This is not real singularization: "Status" becomes "Statu". Callers that
// need correct singular forms must supply them explicitly.
func SingularDisplayName(plural string) string {
	if strings.HasSuffix(plural, "s") {
		return plural[:len(plural)-1]
	}
	return plural
}

// EntityRouteName is the camel-cased base segment of route, suffixed with
// DetailSuffix for detail pages.
func EntityRouteName(route string, detail bool) (string, error) {
	base, err := BaseSegment(route)
	if err != nil {
		return "", err
	}

	name := CamelCase(base)
	if detail {
		name += DetailSuffix
	}
	return name, nil
}
