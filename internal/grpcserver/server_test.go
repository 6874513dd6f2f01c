package grpcserver

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"a11ydash/internal/feed"
	"a11ydash/internal/store"
	"a11ydash/pkg/models"
)

func dial(t *testing.T, st *store.Store) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs, _ := New(st, nil)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func loadedStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	require.NoError(t, st.Reload(context.Background(), feed.NewBundled(), nil))
	return st
}

func TestOverview(t *testing.T) {
	c := NewClient(dial(t, loadedStore(t)))

	out, err := c.Overview(context.Background())
	require.NoError(t, err)
	kpi := out.GetFields()["kpi"].GetStructValue().GetFields()
	assert.Equal(t, float64(8), kpi["total"].GetNumberValue())
	assert.Equal(t, float64(2), kpi["recheck"].GetNumberValue())
	assert.Len(t, out.GetFields()["items"].GetListValue().GetValues(), 4)
}

func TestListTouchpoints(t *testing.T) {
	c := NewClient(dial(t, loadedStore(t)))
	ctx := context.Background()

	out, err := c.ListTouchpoints(ctx, map[string]any{"sort": "issueCount", "dir": "desc"})
	require.NoError(t, err)
	items := out.GetFields()["items"].GetListValue().GetValues()
	require.Len(t, items, 8)
	first := items[0].GetStructValue().GetFields()
	assert.Equal(t, "Ricerca prodotti", first["section"].GetStringValue())

	out, err = c.ListTouchpoints(ctx, map[string]any{"q": "nothing-matches"})
	require.NoError(t, err)
	assert.Equal(t, models.NoResults, out.GetFields()["message"].GetStringValue())

	_, err = c.ListTouchpoints(ctx, map[string]any{"sort": "bogus"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListIssues(t *testing.T) {
	c := NewClient(dial(t, loadedStore(t)))
	ctx := context.Background()

	out, err := c.ListIssues(ctx, map[string]any{"touchpointId": "home", "type": "Contrasto"})
	require.NoError(t, err)
	assert.Equal(t, float64(1), out.GetFields()["total"].GetNumberValue())

	_, err = c.ListIssues(ctx, map[string]any{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.ListIssues(ctx, map[string]any{"touchpointId": "blog"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestResolveIssue(t *testing.T) {
	st := loadedStore(t)
	c := NewClient(dial(t, st))

	out, err := c.ResolveIssue(context.Background(), 3)
	require.NoError(t, err)
	got := out.GetFields()["issue"].GetStructValue().GetFields()
	assert.Equal(t, models.IssueStatusResolved, got["status"].GetStringValue())

	it, _ := st.Issue(3)
	assert.Equal(t, models.IssueStatusResolved, models.Str(it.Status))

	_, err = c.ResolveIssue(context.Background(), 999)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestNotLoaded(t *testing.T) {
	conn := dial(t, store.New())

	_, err := NewClient(conn).Overview(context.Background())
	assert.Equal(t, codes.Unavailable, status.Code(err))

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
