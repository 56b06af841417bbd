package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/config"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/fixture"
	"github.com/preston-bernstein/schedule-import-service/internal/testutil"
)

func testConfig() config.Config {
	return config.Config{
		Port:     "0",
		Provider: "fixture",
		Import: config.ImportConfig{
			Timezone:      "America/Los_Angeles",
			State:         "CA",
			SweepInterval: time.Hour,
			SessionTTL:    time.Hour,
		},
	}
}

func TestServerServesImportFlow(t *testing.T) {
	counting := &testutil.CountingService{SportsService: fixture.New()}
	rec := metrics.NewRecorder()
	srv := newServerWithProvider(testConfig(), nil, counting, rec)
	t.Cleanup(func() { _ = srv.imports.Shutdown(context.Background()) })

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	sess, err := srv.imports.Create(context.Background(), imports.CreateInput{Table: testutil.SampleTable()})
	require.NoError(t, err)
	require.Equal(t, "CA", sess.State.Defaults.State)

	rr = testutil.Serve(srv.Handler(), http.MethodPost, "/imports/"+sess.ID+"/resolve", nil)
	testutil.AssertStatus(t, rr, http.StatusAccepted)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.imports.Wait(ctx, sess.ID))

	require.Positive(t, counting.Searches)
	require.Positive(t, rec.ProviderCalls("fixture"))
}

func TestReadyWaitsForFirstSweep(t *testing.T) {
	srv := newServerWithProvider(testConfig(), nil, fixture.New(), metrics.NewRecorder())
	t.Cleanup(func() { _ = srv.imports.Shutdown(context.Background()) })

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	srv.sweeper.Start(context.Background())
	t.Cleanup(func() { _ = srv.sweeper.Stop(context.Background()) })
	require.Eventually(t, func() bool { return srv.sweeper.Status().IsReady() }, time.Second, 10*time.Millisecond)

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestRunStartsAndStopsComponents(t *testing.T) {
	svc, _ := testutil.NewImportService(imports.Config{})
	httpSrv := &testutil.StubHTTPServer{AddrVal: ":0", ListenErr: http.ErrServerClosed}
	swp := &testutil.StubSweeper{}
	srv := newServerWithDeps(testConfig(), nil, svc, httpSrv, swp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	srv.Run(ctx, cancel)

	if swp.StartCalls != 1 || swp.StopCalls != 1 {
		t.Fatalf("expected sweeper start/stop once, got %+v", swp)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected http shutdown once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestShutdownLogsFailures(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	httpSrv := &testutil.StubHTTPServer{ShutdownErr: errors.New("stuck")}
	swp := &testutil.StubSweeper{Err: errors.New("sweeper stuck")}
	srv := newServerWithDeps(testConfig(), logger, nil, httpSrv, swp)

	srv.gracefulShutdown()

	out := buf.String()
	for _, want := range []string{"graceful shutdown failed", "failed to stop sweeper", "shutdown complete"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in logs, got %s", want, out)
		}
	}
}

func TestBlockingShutdownHonorsTimeout(t *testing.T) {
	orig := shutdownTimeout
	shutdownTimeout = 20 * time.Millisecond
	defer func() { shutdownTimeout = orig }()

	httpSrv := &testutil.BlockingHTTPServer{Unblock: make(chan struct{})}
	srv := newServerWithDeps(testConfig(), nil, nil, httpSrv, &testutil.StubSweeper{})

	done := make(chan struct{})
	go func() {
		srv.gracefulShutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected shutdown to give up after the timeout")
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected one shutdown call, got %d", httpSrv.ShutdownCalls)
	}
}

func TestLaunchServerReportsListenErrors(t *testing.T) {
	errCh := make(chan error, 1)
	launchServer("test", &testutil.ErrHTTPServer{}, nil, func(err error) { errCh <- err })
	select {
	case err := <-errCh:
		if err == nil {
			t.Fatalf("expected listen error")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected onError to be called")
	}

	called := make(chan struct{}, 1)
	launchServer("closed", &testutil.CloseableHTTPServer{}, nil, func(error) { called <- struct{}{} })
	select {
	case <-called:
		t.Fatalf("expected ErrServerClosed to be ignored")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestImportDefaultsFromConfig(t *testing.T) {
	update := ImportDefaults(config.ImportConfig{Timezone: "America/Chicago", OrgID: 1001, State: "TX"})
	require.Equal(t, "America/Chicago", *update.Timezone)
	require.Equal(t, 1001, *update.OrgID)
	require.Equal(t, "TX", *update.State)
	require.Nil(t, update.Sport)

	empty := ImportDefaults(config.ImportConfig{})
	require.Nil(t, empty.Timezone)
	require.Nil(t, empty.OrgID)
	require.Nil(t, empty.State)
}
