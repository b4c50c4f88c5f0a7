package grpcapi

import (
	"context"
	"net"

	"github.com/go-logr/logr"
	"google.golang.org/grpc"

	"github.com/sajjad-MoBe/slotstore/internal/api"
	"github.com/sajjad-MoBe/slotstore/internal/deployment"
)

// Server implements the Slot gRPC service over a deployment
type Server struct {
	logr.Logger

	deployment deployment.Deployment
	metrics    *api.Metrics
	grpc       *grpc.Server
}

// NewServer creates a gRPC server for dep. Operations are counted in
// metrics when it is non-nil.
func NewServer(logger logr.Logger, dep deployment.Deployment, metrics *api.Metrics) *Server {
	s := &Server{
		Logger:     logger,
		deployment: dep,
		metrics:    metrics,
	}
	s.grpc = grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.ChainUnaryInterceptor(
			UnaryErrorInterceptor,
			UnaryLoggingInterceptor(logger),
		),
	)
	s.grpc.RegisterService(&ServiceDesc, s)
	return s
}

// Save implements SlotServer
func (s *Server) Save(ctx context.Context, req *SaveRequest) (*SaveResponse, error) {
	if err := s.deployment.Validate(req.Text); err != nil {
		return nil, err
	}
	message := s.deployment.Save(req.Text)
	s.record("save")
	return &SaveResponse{Message: message}, nil
}

// Read implements SlotServer
func (s *Server) Read(ctx context.Context, req *ReadRequest) (*ReadResponse, error) {
	value := s.deployment.Read()
	s.record("read")
	return &ReadResponse{Value: value}, nil
}

func (s *Server) record(operation string) {
	if s.metrics != nil {
		s.metrics.RecordOperation(operation)
	}
}

// Start serves gRPC on ln until the server fails or ctx is cancelled
func (s *Server) Start(ctx context.Context, ln net.Listener) error {
	errch := make(chan error, 1)
	go func() {
		errch <- s.grpc.Serve(ln)
	}()

	s.Info("started grpc server", "address", ln.Addr().String(), "deployment", s.deployment.Kind())

	select {
	case err := <-errch:
		return err
	case <-ctx.Done():
		s.Info("gracefully shutting down grpc server...")
		s.grpc.GracefulStop()
		return nil
	}
}
