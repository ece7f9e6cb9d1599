package resolver

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// checkShape rejects literals no resolution rule can accept.
func (r *Resolver) checkShape(literal string) error {
	switch {
	case strings.HasPrefix(literal, "/") || isDrivePath(literal):
		return zerr.With(zerr.Wrap(domain.ErrImportAbsolute, fmt.Sprintf("%q", literal)), "import", literal)
	case schemePattern.MatchString(literal):
		return zerr.With(zerr.Wrap(domain.ErrImportWithScheme, fmt.Sprintf("%q", literal)), "import", literal)
	case strings.Contains(literal, "\\"):
		return zerr.With(zerr.Wrap(domain.ErrImportWithBackslash, fmt.Sprintf("%q", literal)), "import", literal)
	case r.packageName != "" && (literal == r.packageName || strings.HasPrefix(literal, r.packageName+"/")):
		err := zerr.Wrap(domain.ErrImportSelfPackage, fmt.Sprintf("%q names package %q", literal, r.packageName))
		return zerr.With(err, "import", literal)
	}
	return nil
}

func isDrivePath(s string) bool {
	if len(s) < 3 || s[1] != ':' || (s[2] != '/' && s[2] != '\\') {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isRelative(literal string) bool {
	return literal == "." || literal == ".." || strings.HasPrefix(literal, "./") || strings.HasPrefix(literal, "../")
}

// libraryRewrite returns the part of name after its last library install
// directory segment.
func libraryRewrite(name string) (string, bool) {
	segments := strings.Split(name, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == domain.LibraryDirName {
			return strings.Join(segments[i+1:], "/"), true
		}
	}
	return "", false
}

func escapes(name string) bool {
	return name == ".." || strings.HasPrefix(name, "../")
}

// splitLibrary splits a library logical name into the library id and the
// path inside the library. Scoped ids take two segments.
func splitLibrary(name string) (id, rest string) {
	segments := strings.SplitN(name, "/", 3)
	if strings.HasPrefix(name, "@") && len(segments) >= 2 {
		id = segments[0] + "/" + segments[1]
		if len(segments) == 3 {
			rest = segments[2]
		}
		return id, rest
	}
	id, rest, _ = strings.Cut(name, "/")
	return id, rest
}

func cleanName(name string) string {
	return path.Clean(name)
}
