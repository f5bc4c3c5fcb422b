package osdu

import (
	"fmt"
	"strings"
)

// Kind is a parsed OSDU kind identifier. The grammar is
// <namespace>:<domain>:<category>--<Entity>:<version>, where version is
// usually a wildcard like "*" or "1.*.*".
type Kind struct {
	Namespace string
	Domain    string
	Category  string
	Entity    string
	Version   string
}

// ParseKind splits a kind string into its structured parts. The separator
// grammar must be present in full; partial kinds are rejected.
func ParseKind(kind string) (*Kind, error) {
	parts := strings.Split(kind, ":")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: expected 4 colon-separated segments, got %d in %q", ErrMalformedKind, len(parts), kind)
	}

	category, entity, found := strings.Cut(parts[2], "--")
	if !found || entity == "" {
		return nil, fmt.Errorf("%w: missing entity separator in %q", ErrMalformedKind, kind)
	}

	return &Kind{
		Namespace: parts[0],
		Domain:    parts[1],
		Category:  category,
		Entity:    entity,
		Version:   parts[3],
	}, nil
}

// EntityName extracts the entity segment from a kind string without
// requiring the full grammar, for wildcard fallback queries. A kind
// with no entity separator has no extractable entity.
func EntityName(kind string) (string, error) {
	idx := strings.LastIndex(kind, "--")
	if idx < 0 {
		return "", fmt.Errorf("%w: no entity separator in %q", ErrMalformedKind, kind)
	}
	entity := kind[idx+2:]
	if cut := strings.IndexByte(entity, ':'); cut >= 0 {
		entity = entity[:cut]
	}
	if entity == "" {
		return "", fmt.Errorf("%w: empty entity in %q", ErrMalformedKind, kind)
	}
	return entity, nil
}
