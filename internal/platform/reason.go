package platform

import (
	"errors"
	"os"
)

// FailureReason classifies why creating a reference failed.
type FailureReason string

const (
	ReasonPrivilege   FailureReason = "privilege"
	ReasonCrossDevice FailureReason = "cross-device"
	ReasonUnsupported FailureReason = "unsupported"
	ReasonExists      FailureReason = "exists"
	ReasonOther       FailureReason = "other"
)

// Classify maps a link or write error to a FailureReason.
func Classify(err error) FailureReason {
	if err == nil {
		return ""
	}
	if errors.Is(err, os.ErrExist) {
		return ReasonExists
	}
	if reason, ok := classifyErrno(err); ok {
		return reason
	}
	if errors.Is(err, os.ErrPermission) {
		return ReasonPrivilege
	}
	return ReasonOther
}
