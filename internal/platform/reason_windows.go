//go:build windows

package platform

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

func classifyErrno(err error) (FailureReason, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return "", false
	}
	switch {
	case errno == windows.ERROR_PRIVILEGE_NOT_HELD || errno == windows.ERROR_ACCESS_DENIED:
		return ReasonPrivilege, true
	case errno == windows.ERROR_NOT_SAME_DEVICE:
		return ReasonCrossDevice, true
	case errno == windows.ERROR_NOT_SUPPORTED || errno == windows.ERROR_INVALID_FUNCTION:
		return ReasonUnsupported, true
	case errno == windows.ERROR_ALREADY_EXISTS || errno == windows.ERROR_FILE_EXISTS:
		return ReasonExists, true
	}
	return "", false
}
