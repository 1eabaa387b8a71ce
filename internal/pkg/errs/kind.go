package errs

import "errors"

// Kind is the stable classification of an error used by inbound adapters.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAlreadyAssigned
	KindOperatorBusy
	KindNoActiveTask
	KindDescriptionRequired
	KindAlreadyConfirmed
	KindInvalidPayload
	KindInvalidState
	KindValidation
	KindStorageUnavailable
)

var kindNames = map[Kind]string{
	KindInternal:            "Internal",
	KindNotFound:            "NotFound",
	KindAlreadyAssigned:     "AlreadyAssigned",
	KindOperatorBusy:        "OperatorBusy",
	KindNoActiveTask:        "NoActiveTask",
	KindDescriptionRequired: "DescriptionRequired",
	KindAlreadyConfirmed:    "AlreadyConfirmed",
	KindInvalidPayload:      "InvalidPayload",
	KindInvalidState:        "InvalidState",
	KindValidation:          "Validation",
	KindStorageUnavailable:  "StorageUnavailable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Internal"
}

// kindOrder is checked first to last; engine kinds win over the generic
// validation sentinels they may be joined with.
var kindOrder = []struct {
	sentinel error
	kind     Kind
}{
	{ErrStorageUnavailable, KindStorageUnavailable},
	{ErrAlreadyAssigned, KindAlreadyAssigned},
	{ErrOperatorBusy, KindOperatorBusy},
	{ErrNoActiveTask, KindNoActiveTask},
	{ErrDescriptionRequired, KindDescriptionRequired},
	{ErrAlreadyConfirmed, KindAlreadyConfirmed},
	{ErrInvalidPayload, KindInvalidPayload},
	{ErrInvalidState, KindInvalidState},
	{ErrObjectNotFound, KindNotFound},
	{ErrValueIsRequired, KindValidation},
	{ErrValueIsInvalid, KindValidation},
	{ErrValueIsOutOfRange, KindValidation},
}

// KindOf classifies err. A nil error or an unknown chain is KindInternal.
//
// Example:
//
//	switch errs.KindOf(err) {
//	case errs.KindAlreadyAssigned, errs.KindOperatorBusy:
//	    return http.StatusConflict
//	case errs.KindStorageUnavailable:
//	    return http.StatusServiceUnavailable
//	}
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for _, candidate := range kindOrder {
		if errors.Is(err, candidate.sentinel) {
			return candidate.kind
		}
	}
	return KindInternal
}

// IsRetryable reports whether the caller may retry the operation unchanged.
func IsRetryable(err error) bool {
	return KindOf(err) == KindStorageUnavailable
}
