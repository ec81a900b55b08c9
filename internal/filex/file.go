package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrBadFileName = errors.New("bad file name")

// EnsureSubdDir creates dirName (relative to the working directory unless
// absolute) and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeJoin places the last element of name inside dir. Server-supplied names
// like "../../etc/passwd" end up as dir/passwd.
func SafeJoin(dir, name string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + filepath.ToSlash(name)))
	if base == "" || base == "." || base == ".." || base == "/" || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q", ErrBadFileName, name)
	}
	return filepath.Join(dir, base), nil
}
