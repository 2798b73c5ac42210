package validate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/mrsgo/internal/refstore"
)

// Kind identifies the invariant a violation breaks.
type Kind int

const (
	KindUniqueness Kind = iota + 1
	KindDanglingReference
	KindLayerDirection
	KindMandatoryCycle
)

var kindNames = map[Kind]string{
	KindUniqueness:        "UniquenessViolation",
	KindDanglingReference: "DanglingReferenceViolation",
	KindLayerDirection:    "LayerDirectionViolation",
	KindMandatoryCycle:    "MandatoryCycleViolation",
}

// Kinds lists every violation kind in report order.
var Kinds = []Kind{KindUniqueness, KindDanglingReference, KindLayerDirection, KindMandatoryCycle}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if strings.EqualFold(name, string(text)) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown violation kind %q", text)
}

// Violation is one finding of the validator.
type Violation struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	// Metamodels names the offending metamodels. For a cycle they are listed in
	// edge order.
	Metamodels []uuid.UUID `json:"metamodels,omitempty" yaml:"metamodels,omitempty"`
	// Names holds display names matching Metamodels; unresolvable IDs are rendered as IDs.
	Names []string       `json:"names,omitempty" yaml:"names,omitempty"`
	Edge  *refstore.Edge `json:"edge,omitempty" yaml:"edge,omitempty"`
}

func (v Violation) String() string {
	return v.Kind.String() + ": " + v.Message
}

// Report is the ordered result of a validation run.
type Report struct {
	Violations []Violation `json:"violations" yaml:"violations"`
}

// OK reports whether the structure is well-formed.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Count returns the number of violations of the given kind.
func (r Report) Count(kind Kind) int {
	return len(r.ByKind(kind))
}

// ByKind returns the violations of the given kind in report order.
func (r Report) ByKind(kind Kind) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// Summary returns a count per kind, omitting kinds with no violations.
func (r Report) Summary() map[Kind]int {
	summary := make(map[Kind]int)
	for _, v := range r.Violations {
		summary[v.Kind]++
	}
	return summary
}
