package grpcserver

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/Krimson/growth-monitory/internal/growth"
	"github.com/Krimson/growth-monitory/internal/kpsp"
	"github.com/Krimson/growth-monitory/internal/reftable"
	"github.com/Krimson/growth-monitory/internal/service"
	"github.com/Krimson/growth-monitory/pkg/models"
)

type testEnv struct {
	client *Client
	health *HealthServer
	conn   *grpc.ClientConn
}

func startServer(t *testing.T) *testEnv {
	t.Helper()

	tables, err := reftable.LoadEmbedded()
	require.NoError(t, err)
	svc := service.NewGrowthService(
		growth.NewEngine(growth.NewStandards(tables)),
		kpsp.NewEvaluator(kpsp.DefaultBank()),
		nil,
		zap.NewNop(),
	)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(UnaryLogger(zap.NewNop())))
	NewServer(svc, zap.NewNop()).Register(srv)
	health := NewHealthServer()
	grpc_health_v1.RegisterHealthServer(srv, health)
	health.SetServingStatus(ServiceName)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(listener) }()

	client, err := Dial(listener.Addr().String())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		srv.GracefulStop()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
		}
	})

	return &testEnv{client: client, health: health, conn: client.conn}
}

func TestCalculateZScoreRPC(t *testing.T) {
	env := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := env.client.CalculateZScore(ctx, models.CalculateRequest{
		Weight:    models.Float(9.5),
		AgeMonths: models.Float(12),
		Gender:    "M",
		Type:      "wfa",
	})
	require.NoError(t, err)
	assert.InDelta(t, -0.14, resp.ZScore, 0.011)
	assert.Equal(t, "normal", resp.Classification.Category)
	assert.Equal(t, "wfa", resp.MeasurementType)
	require.NotNil(t, resp.Inputs.Weight)
	assert.Equal(t, 9.5, *resp.Inputs.Weight)
	assert.Nil(t, resp.Inputs.Height)
}

func TestCalculateZScoreRPC_Errors(t *testing.T) {
	env := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tests := []struct {
		name string
		req  models.CalculateRequest
		code codes.Code
	}{
		{"missing weight", models.CalculateRequest{AgeMonths: models.Float(12)}, codes.InvalidArgument},
		{"bad gender", models.CalculateRequest{Weight: models.Float(9.5), AgeMonths: models.Float(12), Gender: "X"}, codes.InvalidArgument},
		{"unsupported type", models.CalculateRequest{Weight: models.Float(9.5), AgeMonths: models.Float(12), Type: "acfa"}, codes.InvalidArgument},
		{"not computable", models.CalculateRequest{Weight: models.Float(20), AgeMonths: models.Float(72)}, codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.CalculateZScore(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestEvaluateKPSPRPC(t *testing.T) {
	env := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := env.client.EvaluateKPSP(ctx, models.KPSPRequest{
		AgeMonths: models.Float(12),
		Answers:   []bool{true, true, true, true, false},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.AgeGroup)
	assert.Equal(t, 4, resp.Score)
	assert.Equal(t, "Perkembangan Sesuai Usia", resp.Result)

	_, err = env.client.EvaluateKPSP(ctx, models.KPSPRequest{AgeMonths: models.Float(1), Answers: []bool{true}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestInfoRPC(t *testing.T) {
	env := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := env.client.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.AppName, info.AppName)
	assert.Len(t, info.SupportedIndices, len(growth.IndexKinds))
}

func TestHealthServer(t *testing.T) {
	env := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hc := grpc_health_v1.NewHealthClient(env.conn)

	resp, err := hc.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = hc.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	_, err = hc.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: "unknown"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	env.health.Shutdown()
	env.health.SetServingStatus(ServiceName)

	resp, err = hc.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	resp, err = hc.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestCodeFor(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, codeFor(growth.ErrInputOutOfBounds))
	assert.Equal(t, codes.Unavailable, codeFor(service.ErrJournalDisabled))
	assert.Equal(t, codes.DeadlineExceeded, codeFor(context.DeadlineExceeded))
	assert.Equal(t, codes.Internal, codeFor(assert.AnError))
}

func TestStatusError_KeepsCause(t *testing.T) {
	s := NewServer(nil, zap.NewNop())

	st := status.Convert(s.statusError(errors.New("pq: connection refused")))
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "pq: connection refused", st.Message())

	st = status.Convert(s.statusError(growth.ErrIndexNotComputable))
	assert.Equal(t, codes.Internal, st.Code())
	assert.Contains(t, st.Message(), "could not calculate z-score")
}

func TestHealthWatch(t *testing.T) {
	env := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := grpc_health_v1.NewHealthClient(env.conn).Watch(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)

	resp, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	env.health.SetNotServingStatus(ServiceName)
	resp, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	env.health.SetServingStatus(ServiceName)
	resp, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestHealthWatch_UnknownService(t *testing.T) {
	env := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := grpc_health_v1.NewHealthClient(env.conn).Watch(ctx, &grpc_health_v1.HealthCheckRequest{Service: "growth.v1.Later"})
	require.NoError(t, err)

	resp, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN, resp.GetStatus())

	env.health.SetServingStatus("growth.v1.Later")
	resp, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestHealthMonitor(t *testing.T) {
	h := NewHealthServer()
	var down atomic.Bool

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Monitor(ctx, ServiceName, 10*time.Millisecond, func(context.Context) error {
			if down.Load() {
				return errors.New("redis: connection refused")
			}
			return nil
		})
		close(stopped)
	}()

	statusOf := func() grpc_health_v1.HealthCheckResponse_ServingStatus {
		resp, err := h.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
		if err != nil {
			return grpc_health_v1.HealthCheckResponse_UNKNOWN
		}
		return resp.GetStatus()
	}

	require.Eventually(t, func() bool {
		return statusOf() == grpc_health_v1.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	down.Store(true)
	require.Eventually(t, func() bool {
		return statusOf() == grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped
}
