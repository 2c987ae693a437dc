package httpserver_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/sdes/internal/httpserver"
)

type ctxKey struct{}

func serve(t *testing.T, ctx context.Context, handler http.Handler, opts ...httpserver.Option) (net.Addr, chan error) {
	t.Helper()
	ready := make(chan net.Addr, 1)
	opts = append(opts, httpserver.WithReadySignal(func(addr net.Addr) { ready <- addr }))
	svr, err := httpserver.New("localhost:0", handler, opts...)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- svr.ListenAndServe(ctx)
	}()

	select {
	case addr := <-ready:
		return addr, done
	case err := <-done:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not become ready")
	}
	return nil, nil
}

func TestServer_ServeAndStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "sdes"))
	defer cancel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, _ := r.Context().Value(ctxKey{}).(string)
		_, _ = io.WriteString(w, "pong "+v)
	})
	addr, done := serve(t, ctx, handler, httpserver.WithShutdownTimeout(time.Second))

	resp, err := http.Get("http://" + addr.String() + "/ping") // nolint: noctx
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong sdes", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ShutdownTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
	})
	addr, done := serve(t, ctx, handler, httpserver.WithShutdownTimeout(50*time.Millisecond))

	go func() {
		resp, err := http.Get("http://" + addr.String() + "/slow") // nolint: noctx
		if err == nil {
			resp.Body.Close()
		}
	}()
	<-started

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, httpserver.ErrServerShutdownFailed)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenFails(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer ln.Close()

	svr, err := httpserver.New(ln.Addr().String(), http.NotFoundHandler())
	require.NoError(t, err)
	err = svr.ListenAndServe(context.Background())
	assert.Error(t, err)
}

func TestNew_NilHandler(t *testing.T) {
	_, err := httpserver.New("localhost:0", nil)
	assert.ErrorIs(t, err, httpserver.ErrNilHandler)
}
