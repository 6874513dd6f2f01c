package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "a11ydash.v1.Dashboard"

// Requests and responses are google.protobuf.Struct values carrying the same
// JSON shapes as the HTTP API, so no generated code is needed.
type DashboardServer interface {
	Overview(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTouchpoints(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListIssues(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveIssue(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(DashboardServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DashboardServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(DashboardServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Overview", DashboardServer.Overview),
		unaryHandler("ListTouchpoints", DashboardServer.ListTouchpoints),
		unaryHandler("ListIssues", DashboardServer.ListIssues),
		unaryHandler("ResolveIssue", DashboardServer.ResolveIssue),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "a11ydash/v1/dashboard.proto",
}

// Register adds the dashboard service to s.
func Register(s grpc.ServiceRegistrar, srv DashboardServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the dashboard service over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, fields map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Overview(ctx context.Context) (*structpb.Struct, error) {
	return c.invoke(ctx, "Overview", nil)
}

// ListTouchpoints accepts the keys q, status, sort and dir.
func (c *Client) ListTouchpoints(ctx context.Context, query map[string]any) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListTouchpoints", query)
}

// ListIssues requires touchpointId and accepts q, status, type and wcag.
func (c *Client) ListIssues(ctx context.Context, query map[string]any) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListIssues", query)
}

func (c *Client) ResolveIssue(ctx context.Context, id int) (*structpb.Struct, error) {
	return c.invoke(ctx, "ResolveIssue", map[string]any{"id": id})
}
