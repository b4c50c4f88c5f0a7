// Package grpcapi serves the slot over gRPC. Messages are plain Go structs
// exchanged with a JSON codec, so no generated code is needed.
package grpcapi

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "slotstore.Slot"

const (
	saveMethod = "/" + ServiceName + "/Save"
	readMethod = "/" + ServiceName + "/Read"
)

// SaveRequest carries the value to store. A nil Text is a missing field.
type SaveRequest struct {
	Text *string `json:"text,omitempty"`
}

// SaveResponse carries the deployment's confirmation message
type SaveResponse struct {
	Message string `json:"message"`
}

type ReadRequest struct{}

// ReadResponse carries the stored value or the deployment's sentinel
type ReadResponse struct {
	Value string `json:"value"`
}

// SlotServer is the server API for the Slot service
type SlotServer interface {
	Save(context.Context, *SaveRequest) (*SaveResponse, error)
	Read(context.Context, *ReadRequest) (*ReadResponse, error)
}

// jsonCodec marshals messages as JSON
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return "json" }

// ServiceDesc describes the Slot service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SlotServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Save", Handler: saveHandler},
		{MethodName: "Read", Handler: readHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func saveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SaveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SlotServer).Save(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: saveMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SlotServer).Save(ctx, req.(*SaveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func readHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SlotServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: readMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SlotServer).Read(ctx, req.(*ReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}
