package grpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"a11ydash/internal/issue"
	"a11ydash/internal/store"
	"a11ydash/internal/touchpoint"
	"a11ydash/pkg/models"
)

type Server struct {
	Store *store.Store
}

func NewServer(s *store.Store) *Server {
	return &Server{Store: s}
}

// New builds a gRPC server exposing the dashboard and the standard health
// service. Health reports SERVING once the store holds data.
func New(st *store.Store, logger *zap.Logger) (*grpc.Server, *health.Server) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))
	Register(gs, NewServer(st))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	SetServing(hs, st.Loaded())
	return gs, hs
}

// SetServing updates both the overall and the per-service health status.
func SetServing(hs *health.Server, ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", st)
	hs.SetServingStatus(ServiceName, st)
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("grpc call",
			zap.String("method", info.FullMethod),
			zap.Duration("took", time.Since(start)),
			zap.String("code", status.Code(err).String()),
		)
		return resp, err
	}
}

func (s *Server) loaded() error {
	if !s.Store.Loaded() {
		return status.Error(codes.Unavailable, "data not loaded")
	}
	return nil
}

func (s *Server) Overview(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return toStruct(s.Store.Overview())
}

func (s *Server) ListTouchpoints(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	sort, err := touchpoint.ParseSort(field(req, "sort"), field(req, "dir"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	q := touchpoint.Query{Search: field(req, "q"), Status: field(req, "status")}
	items := touchpoint.FilterAndSort(s.Store.Touchpoints(), q, sort)

	resp := map[string]any{"total": len(items), "items": items, "sort": sort}
	if len(items) == 0 {
		resp["message"] = models.NoResults
	}
	return toStruct(resp)
}

func (s *Server) ListIssues(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := strings.TrimSpace(field(req, "touchpointId"))
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "touchpointId required")
	}
	if err := s.loaded(); err != nil {
		return nil, err
	}
	tp, ok := s.Store.Touchpoint(id)
	if !ok {
		return nil, status.Error(codes.NotFound, "touchpoint not found")
	}

	q := issue.Query{
		Search: field(req, "q"),
		Status: field(req, "status"),
		Type:   field(req, "type"),
		WCAG:   field(req, "wcag"),
	}
	items := issue.Filter(s.Store.IssuesFor(tp.Section), q)

	resp := map[string]any{"total": len(items), "items": items}
	if len(items) == 0 {
		resp["message"] = models.NoResults
	}
	return toStruct(resp)
}

func (s *Server) ResolveIssue(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	v, ok := req.GetFields()["id"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	n := v.GetNumberValue()
	if n != math.Trunc(n) {
		return nil, status.Error(codes.InvalidArgument, "id must be an integer")
	}

	it, err := s.Store.Resolve(int(n))
	switch {
	case errors.Is(err, store.ErrNotLoaded):
		return nil, status.Error(codes.Unavailable, "data not loaded")
	case errors.Is(err, store.ErrNotFound):
		return nil, status.Error(codes.NotFound, "not found")
	case err != nil:
		return nil, status.Error(codes.Internal, "resolve failed")
	}
	return toStruct(map[string]any{"issue": it})
}

func field(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

// toStruct converts v through its JSON form so the gRPC payload matches the
// HTTP response body.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode failed")
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, "encode failed")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode failed")
	}
	return out, nil
}
