// Package grpcserver exposes the growth service over gRPC. Messages are
// google.protobuf.Struct values carrying the same JSON documents as the HTTP
// API, so no generated stubs are needed on either side.
package grpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Krimson/growth-monitory/internal/growth"
	"github.com/Krimson/growth-monitory/internal/journal"
	"github.com/Krimson/growth-monitory/internal/kpsp"
	"github.com/Krimson/growth-monitory/internal/service"
	"github.com/Krimson/growth-monitory/pkg/models"
)

const ServiceName = "growth.v1.GrowthService"

const (
	methodCalculateZScore = "/" + ServiceName + "/CalculateZScore"
	methodEvaluateKPSP    = "/" + ServiceName + "/EvaluateKPSP"
	methodInfo            = "/" + ServiceName + "/Info"
)

// Server adapts service.GrowthService to the hand-written service descriptor.
type Server struct {
	service *service.GrowthService
	logger  *zap.Logger
}

func NewServer(svc *service.GrowthService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{service: svc, logger: logger}
}

// growthServer is what the descriptor dispatches to.
type growthServer interface {
	CalculateZScore(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	EvaluateKPSP(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Info(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*growthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CalculateZScore", Handler: unaryHandler(methodCalculateZScore, growthServer.CalculateZScore)},
		{MethodName: "EvaluateKPSP", Handler: unaryHandler(methodEvaluateKPSP, growthServer.EvaluateKPSP)},
		{MethodName: "Info", Handler: unaryHandler(methodInfo, growthServer.Info)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "growth/v1/growth.proto",
}

// Register attaches the growth service to s.
func (s *Server) Register(registrar grpc.ServiceRegistrar) {
	registrar.RegisterService(&serviceDesc, s)
}

func unaryHandler(fullMethod string, call func(growthServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(growthServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(growthServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func (s *Server) CalculateZScore(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req models.CalculateRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request body")
	}

	resp, err := s.service.CalculateZScore(ctx, req)
	if err != nil {
		return nil, s.statusError(err)
	}
	return toStruct(resp)
}

func (s *Server) EvaluateKPSP(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req models.KPSPRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request body")
	}

	resp, err := s.service.EvaluateKPSP(ctx, req)
	if err != nil {
		return nil, s.statusError(err)
	}
	return toStruct(resp)
}

func (s *Server) Info(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(s.service.Info())
}

// ===== Conversion =====

func fromStruct(in *structpb.Struct, dst interface{}) error {
	raw, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// ===== Errors =====

var invalidArgument = []error{
	growth.ErrInputMissing,
	growth.ErrInputOutOfBounds,
	growth.ErrInvalidSex,
	growth.ErrUnsupportedIndexKind,
	kpsp.ErrAgeBandNotFound,
	kpsp.ErrAnswerCountMismatch,
	service.ErrAgeRequired,
	service.ErrInvalidDate,
	journal.ErrChildIDRequired,
}

func codeFor(err error) codes.Code {
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return codes.InvalidArgument
		}
	}
	switch {
	case errors.Is(err, journal.ErrAssessmentNotFound):
		return codes.NotFound
	case errors.Is(err, journal.ErrAlreadyDecided):
		return codes.FailedPrecondition
	case errors.Is(err, service.ErrJournalDisabled):
		return codes.Unavailable
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}
	return codes.Internal
}

func (s *Server) statusError(err error) error {
	code := codeFor(err)
	msg := err.Error()
	switch {
	case errors.Is(err, growth.ErrIndexNotComputable):
		msg = fmt.Sprintf("could not calculate z-score: %v", err)
	case code == codes.Internal:
		s.logger.Error("rpc failed", zap.Error(err))
	}
	return status.Error(code, msg)
}
