package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/fixture"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
)

func TestScheduleFixturesAgree(t *testing.T) {
	table, err := schedule.Read("fixture.csv", strings.NewReader(ScheduleCSV))
	if err != nil {
		t.Fatalf("expected fixture csv to parse, got %v", err)
	}
	sample := SampleTable()
	if len(table.Rows) != len(sample.Rows) {
		t.Fatalf("expected %d rows, got %d", len(sample.Rows), len(table.Rows))
	}
	for i, row := range sample.Rows {
		for k, v := range row {
			if table.Rows[i][k] != v {
				t.Fatalf("row %d column %s: expected %q, got %q", i, k, v, table.Rows[i][k])
			}
		}
	}

	team := SampleTeam(7, "Servite")
	if team.TeamID != 7 || team.OrgID == nil || *team.OrgID != 1000 {
		t.Fatalf("unexpected team fixture %+v", team)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestServerStubs(t *testing.T) {
	s := &StubSweeper{Err: errors.New("stop")}
	s.Start(context.Background())
	if err := s.Stop(context.Background()); !errors.Is(err, s.Err) {
		t.Fatalf("expected stop error")
	}
	if s.StartCalls != 1 || s.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", s)
	}
	if s.Status().IsReady() {
		t.Fatalf("expected zero status to be not ready")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}

	if err := (&ErrHTTPServer{}).ListenAndServe(); err == nil {
		t.Fatalf("expected listen error")
	}
	if err := (&CloseableHTTPServer{}).ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()

	errSvc := ErrService{Err: errors.New("boom")}
	if _, err := errSvc.SearchTeams(ctx, providers.SearchRequest{}); !errors.Is(err, errSvc.Err) {
		t.Fatalf("expected error passthrough")
	}
	if err := UnavailableService().AddScore(ctx, providers.AddScoreRequest{}); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}

	counting := &CountingService{SportsService: fixture.New(), Notify: make(chan struct{})}
	if _, err := counting.SearchTeams(ctx, providers.SearchRequest{TeamName: "Servite"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	select {
	case <-counting.Notify:
	default:
		t.Fatalf("expected notify channel to close")
	}
	if counting.Searches != 1 {
		t.Fatalf("expected one search, got %d", counting.Searches)
	}
}

func TestNewImportService(t *testing.T) {
	svc, dir := NewImportService(imports.Config{})
	defer func() { _ = svc.Shutdown(context.Background()) }()
	if dir == nil {
		t.Fatalf("expected fixture directory")
	}
	sess, err := svc.Create(context.Background(), imports.CreateInput{Table: SampleTable()})
	if err != nil {
		t.Fatalf("expected session, got %v", err)
	}
	if len(sess.State.Games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(sess.State.Games))
	}
}
