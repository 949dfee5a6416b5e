package material

import (
	"path"
	"strings"
)

// drivePlaceholders are texture paths exporters write when no file was set.
var drivePlaceholders = []string{`C:\`, `C:\\`}

// NormalizeTexturePath cleans a texture path from a model file. Drive-root
// placeholders become "", a leading "./" or ".\" is stripped and
// backslashes become forward slashes.
func NormalizeTexturePath(p string) string {
	for _, ph := range drivePlaceholders {
		if p == ph {
			return ""
		}
	}
	switch {
	case strings.HasPrefix(p, "./"), strings.HasPrefix(p, `.\`):
		p = p[2:]
	}
	return strings.ReplaceAll(p, `\`, "/")
}

// FullPath joins a normalized texture path onto the model directory with a
// forward slash.
func FullPath(dir, p string) string {
	p = NormalizeTexturePath(p)
	if p == "" {
		return ""
	}
	if path.IsAbs(p) || dir == "" {
		return p
	}
	return path.Join(strings.ReplaceAll(dir, `\`, "/"), p)
}

// DirOf returns the directory part of a model path: "." when there is no
// slash and "/" for a file at the root.
func DirOf(file string) string {
	file = strings.ReplaceAll(file, `\`, "/")
	i := strings.LastIndex(file, "/")
	switch {
	case i < 0:
		return "."
	case i == 0:
		return "/"
	default:
		return file[:i]
	}
}
