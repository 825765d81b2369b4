package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// A Finder locates executables by name.
type Finder interface {
	// Find returns the path of the named executable.
	Find(name string) (string, error)
}

// FinderFunc adapts a function to the Finder interface.
type FinderFunc func(name string) (string, error)

func (f FinderFunc) Find(name string) (string, error) {
	return f(name)
}

var lookPath = exec.LookPath

// SearchPath probes an ordered list of directories for executables.
// The zero value uses exec.LookPath, which reads PATH at every call.
type SearchPath struct {
	// Dirs are searched in order.
	Dirs []string
	// Exts are the extensions tried for names without one, e.g. ".exe" and ".bat".
	// If empty, names are probed as they are and must have an executable permission bit set.
	Exts []string
}

var _ Finder = SearchPath{}

// NewSearchPath builds a SearchPath from a list of directories separated by
// os.PathListSeparator, as found in the PATH environment variable. Empty entries are dropped.
func NewSearchPath(list string) SearchPath {
	var sp SearchPath

	for _, dir := range filepath.SplitList(list) {
		if dir != "" {
			sp.Dirs = append(sp.Dirs, dir)
		}
	}

	return sp
}

// SearchPathFromEnv builds a SearchPath from the PATH environment variable.
// On Windows the extensions come from PATHEXT.
func SearchPathFromEnv() SearchPath {
	sp := NewSearchPath(os.Getenv("PATH"))

	if runtime.GOOS == "windows" {
		sp.Exts = parsePathExt(os.Getenv("PATHEXT"))
	}

	return sp
}

func parsePathExt(pathext string) []string {
	if pathext == "" {
		return []string{".com", ".exe", ".bat", ".cmd"}
	}

	var exts []string

	for _, e := range strings.Split(strings.ToLower(pathext), ";") {
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		exts = append(exts, e)
	}

	return exts
}

// Prepend returns a copy of the search path with dirs searched first.
func (s SearchPath) Prepend(dirs ...string) SearchPath {
	return SearchPath{
		Dirs: append(append([]string(nil), dirs...), s.Dirs...),
		Exts: append([]string(nil), s.Exts...),
	}
}

// Find returns the path of the first file called name in the search path.
// Names containing a path separator are checked directly and not searched for.
func (s SearchPath) Find(name string) (string, error) {
	if len(s.Dirs) == 0 && len(s.Exts) == 0 {
		return lookPath(name)
	}

	if strings.ContainsAny(name, `/\`) {
		if path, ok := s.probe(name); ok {
			return path, nil
		}
		return "", fmt.Errorf("toolchain: %q: %w", name, exec.ErrNotFound)
	}

	for _, dir := range s.Dirs {
		if path, ok := s.probe(filepath.Join(dir, name)); ok {
			return path, nil
		}
	}

	return "", fmt.Errorf("toolchain: %q not in search path: %w", name, exec.ErrNotFound)
}

func (s SearchPath) probe(path string) (string, bool) {
	if len(s.Exts) == 0 {
		return path, isExecutable(path, true)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		for _, e := range s.Exts {
			if e == ext && isExecutable(path, false) {
				return path, true
			}
		}
	}

	for _, e := range s.Exts {
		if withExt := path + e; isExecutable(withExt, false) {
			return withExt, true
		}
	}

	return "", false
}

func isExecutable(path string, checkMode bool) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	return !checkMode || info.Mode().Perm()&0o111 != 0
}
