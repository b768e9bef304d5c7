package auth

import (
	"errors"
	"net/http"

	apperrors "github.com/spec-kit/movie-service/pkg/util/errorutil"
)

var errUnsupportedScheme = errors.New("unsupported authorization scheme")

// RejectReason is the outcome category of a denied request.
type RejectReason int

const (
	RejectMissingCredential RejectReason = iota + 1
	RejectForbidden
	RejectMissingIdentity
	RejectUnknownIdentity
	RejectInternal
)

func (r RejectReason) String() string {
	switch r {
	case RejectMissingCredential:
		return "missing_credential"
	case RejectForbidden:
		return "forbidden"
	case RejectMissingIdentity:
		return "missing_identity"
	case RejectUnknownIdentity:
		return "unknown_identity"
	case RejectInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Status is the HTTP status sent for the reason.
func (r RejectReason) Status() int {
	switch r {
	case RejectMissingCredential, RejectMissingIdentity, RejectUnknownIdentity:
		return http.StatusUnauthorized
	case RejectInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusForbidden
	}
}

// Rejection is returned by the guard for every denied request. Cause keeps
// the precise failure for logs and is never rendered to clients.
type Rejection struct {
	Reason RejectReason
	Cause  error
}

func (r *Rejection) Error() string {
	if r.Cause != nil {
		return r.Reason.String() + ": " + r.Cause.Error()
	}
	return r.Reason.String()
}

func (r *Rejection) Unwrap() error {
	return r.Cause
}

// DomainError narrows the rejection to the client facing error.
func (r *Rejection) DomainError() *apperrors.DomainError {
	switch r.Reason {
	case RejectMissingCredential:
		msg := "Unauthorized: Missing Authorization header"
		if errors.Is(r.Cause, errUnsupportedScheme) {
			msg = "Unauthorized: Unsupported authorization scheme"
		}
		return apperrors.NewDomainError(apperrors.CodeMissingCredential, msg, r.Reason.Status(), nil)
	case RejectMissingIdentity:
		return apperrors.NewDomainError(apperrors.CodeMissingIdentity,
			"Unauthorized: Token does not contain user ID", r.Reason.Status(), nil)
	case RejectUnknownIdentity:
		return apperrors.NewDomainError(apperrors.CodeUnknownIdentity,
			"Unauthorized: User not found", r.Reason.Status(), nil)
	case RejectInternal:
		return apperrors.NewDomainError(apperrors.CodeInternal,
			"Internal Server Error", r.Reason.Status(), nil)
	default:
		return apperrors.NewDomainError(apperrors.CodeForbidden,
			"Forbidden: Token verification failed", http.StatusForbidden, nil)
	}
}

// asRejection narrows any error to a rejection. Errors that are not already
// rejections deny access as forbidden.
func asRejection(err error) *Rejection {
	var rej *Rejection
	if errors.As(err, &rej) && rej != nil {
		return rej
	}
	return &Rejection{Reason: RejectForbidden, Cause: err}
}
