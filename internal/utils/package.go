package utils

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrInvalidPackage is returned for a base package with no usable segments
var ErrInvalidPackage = errors.New("invalid base package")

// PackageSegments splits a dotted package id ("com.example.app") into its
// segments. Every segment must be a Java identifier.
func PackageSegments(pkg string) ([]string, error) {
	if strings.TrimSpace(pkg) == "" {
		return nil, fmt.Errorf("%w: package is empty", ErrInvalidPackage)
	}

	segments := strings.Split(pkg, ".")
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPackage, pkg)
		}

		if !IsJavaIdentifier(s) {
			return nil, fmt.Errorf("%w: %q in %q is not a Java identifier", ErrInvalidPackage, s, pkg)
		}
	}

	return segments, nil
}

// IsJavaIdentifier reports whether s can name a package segment or class:
// a letter, '_' or '$' followed by letters, digits, '_' or '$'
func IsJavaIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

// PackagePath converts "com.example.app" into "com/example/app" using the host separator
func PackagePath(pkg string) (string, error) {
	segments, err := PackageSegments(pkg)
	if err != nil {
		return "", err
	}

	return filepath.Join(segments...), nil
}
