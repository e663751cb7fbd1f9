package domain

import (
	"errors"
	"fmt"
)

// RejectionReason explains why the admission gate refused a candidate URL.
// It is surfaced locally and never transmitted over the channel.
type RejectionReason string

const (
	ReasonMissing          RejectionReason = "missing"
	ReasonSchemeNotAllowed RejectionReason = "scheme_not_allowed"
	ReasonDangerousScheme  RejectionReason = "dangerous_scheme"
)

var (
	// ErrMissing is returned when no usable URL was supplied.
	ErrMissing = errors.New("invalid URL provided")
	// ErrSchemeNotAllowed is returned when the URL is not http, https or file.
	ErrSchemeNotAllowed = errors.New("URL must use http, https, or file protocol")
	// ErrDangerousScheme is returned for javascript:, data: and vbscript: URLs.
	ErrDangerousScheme = errors.New("dangerous URL protocol detected")

	// ErrChannel marks every failure of the native messaging transport.
	ErrChannel = errors.New("native messaging error")
	// ErrNotAdmitted is returned when a relay is attempted with a value the
	// admission gate did not produce.
	ErrNotAdmitted = errors.New("url was not admitted")
)

// Sentinel returns the sentinel error matching the reason, or nil.
func (r RejectionReason) Sentinel() error {
	switch r {
	case ReasonMissing:
		return ErrMissing
	case ReasonSchemeNotAllowed:
		return ErrSchemeNotAllowed
	case ReasonDangerousScheme:
		return ErrDangerousScheme
	}
	return nil
}

// Rejection is the error returned by the admission gate.
//
// Reason is the first check that failed. Dangerous is set whenever the
// deny-list matched, even when an earlier check already refused the URL, so a
// javascript: link is reported as scheme_not_allowed and still matches
// ErrDangerousScheme.
type Rejection struct {
	Reason    RejectionReason
	Dangerous bool
}

// NewRejection builds a Rejection for the given reason.
func NewRejection(reason RejectionReason) *Rejection {
	return &Rejection{Reason: reason}
}

func (r *Rejection) Error() string {
	if err := r.Reason.Sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("rejected: %s", r.Reason)
}

func (r *Rejection) Unwrap() []error {
	var errs []error
	if err := r.Reason.Sentinel(); err != nil {
		errs = append(errs, err)
	}
	if r.Dangerous && r.Reason != ReasonDangerousScheme {
		errs = append(errs, ErrDangerousScheme)
	}
	return errs
}

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (RejectionReason, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}

// ChannelError wraps a native messaging transport failure.
// It matches ErrChannel and unwraps to the transport cause.
type ChannelError struct {
	Application string
	Err         error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrChannel, e.Application, e.Err)
}

func (e *ChannelError) Unwrap() []error {
	return []error{ErrChannel, e.Err}
}
