package source

import (
	"os"
	"path/filepath"
)

// autoPathLimit: в режиме "auto" более длинные абсолютные пути сокращаются до имени файла.
const autoPathLimit = 40

// lineBounds returns the byte range of line n (1-based) without its '\n'.
func (f *File) lineBounds(n uint32) (start, end int, ok bool) {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return 0, 0, false
	}
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end = len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}

// GetLine returns line n (1-based), or "" when the file has no such line.
func (f *File) GetLine(n uint32) string {
	start, end, ok := f.lineBounds(n)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for output.
// mode is one of "absolute", "relative", "basename" or "auto"; anything
// else returns the stored path. baseDir is used by "relative" and defaults
// to the working directory.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= autoPathLimit {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
