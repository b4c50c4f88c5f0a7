package grpcapi

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sajjad-MoBe/slotstore/internal/errors"
)

// UnaryErrorInterceptor recovers panics and converts handler errors to gRPC
// status errors
func UnaryErrorInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, status.Error(codes.Internal, errors.RecoverError(r).Error())
		}
	}()

	resp, err = handler(ctx, req)
	if err != nil {
		return nil, convertError(err)
	}
	return resp, nil
}

// UnaryLoggingInterceptor logs every call
func UnaryLoggingInterceptor(logger logr.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.V(1).Info("rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start).String())
		return resp, err
	}
}

// convertError converts a SlotError to a gRPC status error
func convertError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.IsInvalidInput(err), errors.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
