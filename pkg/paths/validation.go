package paths

import (
	"path/filepath"
	"strings"

	"github.com/raykroeker/vimfiles/pkg/errors"
)

// ValidatePath performs basic validation on a path.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateSegment ensures a name is usable as a single path component.
// Owners, repositories and namespaces must:
// - Not be empty
// - Not contain path separators
// - Not be reserved names (. or ..)
func ValidateSegment(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "name %q cannot contain path separators", name)
	}

	if name == "." || name == ".." {
		return errors.Newf(errors.ErrInvalidInput, "name cannot be %q", name)
	}

	if strings.ContainsAny(name, "\x00:*?\"<>|") {
		return errors.Newf(errors.ErrInvalidInput, "name %q contains invalid characters", name)
	}

	return nil
}

// ValidateRelative ensures rel is a relative path that stays inside the
// directory it is joined to.
func ValidateRelative(rel string) error {
	if err := ValidatePath(rel); err != nil {
		return err
	}
	if filepath.IsAbs(rel) {
		return errors.Newf(errors.ErrInvalidInput, "path %q must be relative", rel)
	}
	clean := filepath.Clean(rel)
	if clean == "." {
		return errors.Newf(errors.ErrInvalidInput, "path %q does not name a file", rel)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrInvalidInput, "path %q escapes its root", rel)
	}
	return nil
}
