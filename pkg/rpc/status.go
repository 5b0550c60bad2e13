package rpc

import (
	"errors"

	"github.com/fekuna/agritrace-service/pkg/apperror"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain tags ErrorInfo details produced by this service.
const ErrorDomain = "agritrace"

var kindCodes = map[apperror.Kind]codes.Code{
	apperror.KindInvalidArgument:   codes.InvalidArgument,
	apperror.KindDuplicateBatch:    codes.AlreadyExists,
	apperror.KindDuplicateJourney:  codes.AlreadyExists,
	apperror.KindNotFound:          codes.NotFound,
	apperror.KindNoData:            codes.NotFound,
	apperror.KindUnauthorized:      codes.PermissionDenied,
	apperror.KindInvalidState:      codes.FailedPrecondition,
	apperror.KindInvalidTransition: codes.FailedPrecondition,
	apperror.KindIndexOutOfRange:   codes.OutOfRange,
	apperror.KindInternal:          codes.Internal,
}

// Status converts a use case error into a gRPC status error carrying the
// error kind as an ErrorInfo reason.
func Status(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	kind := apperror.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = codes.Internal
	}

	msg := err.Error()
	if kind == apperror.KindInternal {
		// infra details stay in the logs
		msg = "internal error"
	}

	info := &errdetails.ErrorInfo{
		Reason: string(kind),
		Domain: ErrorDomain,
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) && len(appErr.Details) > 0 && kind != apperror.KindInternal {
		info.Metadata = appErr.Details
	}

	st, detErr := status.New(code, msg).WithDetails(info)
	if detErr != nil {
		return status.Error(code, msg)
	}
	return st.Err()
}

// KindOf recovers the error kind from a status error returned by this service.
func KindOf(err error) apperror.Kind {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return apperror.Kind(info.GetReason())
		}
	}
	return ""
}
