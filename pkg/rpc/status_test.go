package rpc

import (
	"errors"
	"testing"

	"github.com/fekuna/agritrace-service/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{apperror.InvalidArgument("bad"), codes.InvalidArgument},
		{apperror.DuplicateBatch("B1"), codes.AlreadyExists},
		{apperror.DuplicateJourney("B1"), codes.AlreadyExists},
		{apperror.NotFound("journey", "B1"), codes.NotFound},
		{apperror.NoData("empty"), codes.NotFound},
		{apperror.Unauthorized(""), codes.PermissionDenied},
		{apperror.InvalidState("complete"), codes.FailedPrecondition},
		{apperror.InvalidTransition("Sold", "InTransit"), codes.FailedPrecondition},
		{apperror.IndexOutOfRange(4, 2), codes.OutOfRange},
		{apperror.Internal("store", errors.New("disk full")), codes.Internal},
	}
	for _, tt := range tests {
		kind := apperror.KindOf(tt.err)
		t.Run(string(kind), func(t *testing.T) {
			err := Status(tt.err)
			assert.Equal(t, tt.code, status.Code(err))
			assert.Equal(t, kind, KindOf(err))
		})
	}
}

func TestStatus_HidesInternalCause(t *testing.T) {
	err := Status(apperror.Internal("store", errors.New("password=hunter2")))

	st, _ := status.FromError(err)
	assert.Equal(t, "internal error", st.Message())
}

func TestStatus_PassThrough(t *testing.T) {
	assert.NoError(t, Status(nil))

	orig := status.Error(codes.Unauthenticated, "missing caller identity")
	assert.Equal(t, orig, Status(orig))
	assert.Equal(t, apperror.Kind(""), KindOf(orig))
}

func TestJSONCodec(t *testing.T) {
	type msg struct {
		BatchID string `json:"batch_id"`
	}
	c := JSONCodec{}
	raw, err := c.Marshal(&msg{BatchID: "B1"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"batch_id":"B1"}`, string(raw))

	var out msg
	assert.NoError(t, c.Unmarshal(raw, &out))
	assert.Equal(t, "B1", out.BatchID)
	assert.NoError(t, c.Unmarshal(nil, &out))
	assert.Equal(t, "json", c.Name())
}
