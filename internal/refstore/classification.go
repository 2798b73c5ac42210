package refstore

import (
	"fmt"
	"strings"
)

// Classification tags a reference as MANDATORY or OPTIONAL.
type Classification int

const (
	// Mandatory means the referencing metamodel cannot validate without the target.
	Mandatory Classification = iota
	// Optional marks an advisory or extension-style dependency.
	Optional
)

var classificationLiterals = [...]string{
	Mandatory: "MANDATORY",
	Optional:  "OPTIONAL",
}

// Classifications lists every classification in value order.
var Classifications = []Classification{Mandatory, Optional}

// String returns the literal of the classification.
func (c Classification) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Classification(%d)", int(c))
	}
	return classificationLiterals[c]
}

// Value returns the integer value of the classification.
func (c Classification) Value() int {
	return int(c)
}

// Valid reports whether c is one of the defined classifications.
func (c Classification) Valid() bool {
	return c == Mandatory || c == Optional
}

// ParseClassification returns the classification with the given literal.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseClassification(literal string) (Classification, error) {
	normalized := strings.ToUpper(strings.TrimSpace(literal))
	for _, c := range Classifications {
		if classificationLiterals[c] == normalized {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown classification %q: must be 'MANDATORY' or 'OPTIONAL'", literal)
}

// ClassificationFromValue returns the classification with the given integer value.
func ClassificationFromValue(v int) (Classification, error) {
	c := Classification(v)
	if !c.Valid() {
		return 0, fmt.Errorf("unknown classification value %d", v)
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Classification) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid classification %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Classification) UnmarshalText(text []byte) error {
	parsed, err := ParseClassification(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
