package commands

import (
	stderrors "errors"
	"os"

	"github.com/raykroeker/vimfiles/pkg/types"
)

type entryKind int

const (
	entryMissing entryKind = iota
	entrySymlink
	entryOther
)

func inspect(fs types.FS, path string) (entryKind, error) {
	info, err := fs.Lstat(path)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		return entrySymlink, nil
	case err == nil:
		return entryOther, nil
	case stderrors.Is(err, os.ErrNotExist):
		return entryMissing, nil
	default:
		return entryMissing, err
	}
}
