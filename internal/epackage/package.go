package epackage

import "strings"

// Package is a handle onto a wrapped schema package.
//
// Implementations must be comparable (typically pointer types) because the
// canonical package is used as a map key. SuperPackage returns nil for a
// top-level package.
type Package interface {
	Name() string
	SuperPackage() Package
}

// Canonicalize returns the top-level package that encloses p, or p itself if
// it has no super package. It returns nil for a nil handle.
//
// The super-package chain must terminate; a cyclic chain is a malformed input
// and makes Canonicalize loop forever.
func Canonicalize(p Package) Package {
	if p == nil {
		return nil
	}
	for {
		super := p.SuperPackage()
		if super == nil {
			return p
		}
		p = super
	}
}

// IsTopLevel reports whether p has no enclosing package.
func IsTopLevel(p Package) bool {
	return p != nil && p.SuperPackage() == nil
}

// QualifiedName returns the dotted path from the top-level package down to p.
func QualifiedName(p Package) string {
	if p == nil {
		return ""
	}
	var segments []string
	for cur := p; cur != nil; cur = cur.SuperPackage() {
		segments = append(segments, cur.Name())
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ".")
}

// SamePackage reports whether a and b resolve to the same canonical package.
func SamePackage(a, b Package) bool {
	ca, cb := Canonicalize(a), Canonicalize(b)
	return ca != nil && ca == cb
}
