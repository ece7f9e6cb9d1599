package fs

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/zkc/internal/core/ports"
)

// TrueCase looks up the slash-separated rel below root one segment at a time
// and returns its on-disk spelling. found is false when some segment has no
// match even ignoring case. A result different from rel means wrong casing.
func TrueCase(fsys ports.FileSystem, root, rel string) (actual string, found bool, err error) {
	rel = path.Clean(rel)
	if rel == "." {
		return rel, true, nil
	}

	dir := root
	segments := strings.Split(rel, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == ".." || seg == "." {
			out = append(out, seg)
			dir = filepath.Join(dir, seg)
			continue
		}

		names, err := fsys.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, nil
			}
			return "", false, err
		}

		match := ""
		for _, name := range names {
			if name == seg {
				match = name
				break
			}
			if match == "" && strings.EqualFold(name, seg) {
				match = name
			}
		}
		if match == "" {
			return "", false, nil
		}
		out = append(out, match)
		dir = filepath.Join(dir, match)
	}

	return strings.Join(out, "/"), true, nil
}
