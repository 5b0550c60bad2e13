package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestGetCallerID(t *testing.T) {
	incoming := func(id string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs(CallerHeader, id))
	}

	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"none", context.Background(), ""},
		{"from context", WithCaller(context.Background(), "farmer-1"), "farmer-1"},
		{"from metadata", incoming("truck-9"), "truck-9"},
		{"metadata is trimmed", incoming("  truck-9 "), "truck-9"},
		{"blank metadata", incoming("   "), ""},
		{"blank context value falls back", WithCaller(incoming("shop-3"), "  "), "shop-3"},
		{"blank everywhere", WithCaller(incoming("\t"), " "), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCallerID(tt.ctx))
		})
	}
}
