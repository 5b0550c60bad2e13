// Package rpc carries the gRPC plumbing shared by the service descriptors:
// a JSON codec, a typed unary handler adapter and error-to-status mapping.
package rpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of the JSON codec ("application/grpc+json").
const CodecName = "json"

type JSONCodec struct{}

func (JSONCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

// Unary adapts a typed method into a grpc.MethodDesc, running the server interceptor chain.
func Unary[S any, Req any, Resp any](service, method string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return fn(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Invoke performs a unary call with the JSON codec.
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, service, method string, in, out interface{}, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return cc.Invoke(ctx, "/"+service+"/"+method, in, out, opts...)
}

// Call is Invoke for a freshly allocated response of type Resp.
func Call[Resp any](ctx context.Context, cc grpc.ClientConnInterface, service, method string, in interface{}, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := Invoke(ctx, cc, service, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
