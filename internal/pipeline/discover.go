package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Kind classifies a directory entry by extension.
type Kind int

const (
	KindMP4 Kind = iota + 1 // Re-encoded in place.
	KindGIF                 // Converted to a sibling MP4.
)

func (k Kind) String() string {
	switch k {
	case KindMP4:
		return "mp4"
	case KindGIF:
		return "gif"
	default:
		return "unknown"
	}
}

// kinds maps lowercase extensions (with leading dot) to the path that handles them.
var kinds = map[string]Kind{
	".mp4": KindMP4,
	".gif": KindGIF,
}

// Entry is one file selected for processing.
type Entry struct {
	Path string // Absolute or dir-relative path, as joined from the scan dir.
	Name string // File name including extension.
	Ext  string // Lowercase extension with leading dot.
	Base string // Name with the original-case extension stripped.
	Kind Kind
}

// Discover lists dir non-recursively and returns its MP4 and GIF files in
// name order. Directories, other extensions, and names matching any exclude
// glob are dropped. A missing or unreadable dir is an error; an empty one
// is not.
func Discover(dir string, exclude []string) ([]Entry, error) {
	matchers := make([]glob.Glob, 0, len(exclude))
	for _, p := range exclude {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		matchers = append(matchers, g)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		rawExt := filepath.Ext(name)
		ext := strings.ToLower(rawExt)
		kind, ok := kinds[ext]
		if !ok || excluded(name, matchers) {
			continue
		}
		entries = append(entries, Entry{
			Path: filepath.Join(dir, name),
			Name: name,
			Ext:  ext,
			Base: strings.TrimSuffix(name, rawExt),
			Kind: kind,
		})
	}
	return entries, nil
}

func excluded(name string, matchers []glob.Glob) bool {
	for _, g := range matchers {
		if g.Match(name) {
			return true
		}
	}
	return false
}
