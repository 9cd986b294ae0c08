package linker

import (
	stderrors "errors"
	"syscall"
)

func isNotDir(err error) bool {
	return stderrors.Is(err, syscall.ENOTDIR)
}
