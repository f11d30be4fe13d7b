//go:build !windows

package platform

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

func classifyErrno(err error) (FailureReason, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return "", false
	}
	// ENOTSUP and EOPNOTSUPP share a value on Linux, so no switch here.
	switch {
	case errno == unix.EPERM || errno == unix.EACCES || errno == unix.EROFS:
		return ReasonPrivilege, true
	case errno == unix.EXDEV:
		return ReasonCrossDevice, true
	case errno == unix.ENOTSUP || errno == unix.EOPNOTSUPP || errno == unix.ENOSYS || errno == unix.EMLINK:
		return ReasonUnsupported, true
	case errno == unix.EEXIST:
		return ReasonExists, true
	}
	return "", false
}
