package server

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/schedule-import-service/internal/config"
	"github.com/preston-bernstein/schedule-import-service/internal/metrics"
	"github.com/preston-bernstein/schedule-import-service/internal/providers"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/fixture"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/scorestream"
	"github.com/preston-bernstein/schedule-import-service/internal/testutil"
)

func TestSelectProvider(t *testing.T) {
	if _, ok := selectProvider(config.Config{}, nil).(*fixture.Directory); !ok {
		t.Fatalf("expected fixture provider by default")
	}
	if _, ok := selectProvider(config.Config{Provider: "ScoreStream"}, nil).(*scorestream.Client); !ok {
		t.Fatalf("expected scorestream client")
	}

	logger, buf := testutil.NewBufferLogger()
	if _, ok := selectProvider(config.Config{Provider: "nope"}, logger).(*fixture.Directory); !ok {
		t.Fatalf("expected fixture fallback for unknown provider")
	}
	if buf.Len() == 0 {
		t.Fatalf("expected warning for unknown provider")
	}
}

func TestProviderFactoryWrapsProvider(t *testing.T) {
	rec := metrics.NewRecorder()
	factory := newProviderFactory(nil, rec)
	prov := factory.build(config.Config{Provider: "fixture"})
	if prov == nil {
		t.Fatalf("expected provider")
	}

	_, err := prov.SearchTeams(context.Background(), providers.SearchRequest{TeamName: "Servite"})
	if err != nil {
		t.Fatalf("expected search to succeed, got %v", err)
	}
	if rec.ProviderCalls("fixture") != 1 {
		t.Fatalf("expected one recorded provider call, got %d", rec.ProviderCalls("fixture"))
	}
}

func TestProviderFactoryDoesNotRetryWrites(t *testing.T) {
	rec := metrics.NewRecorder()
	factory := newProviderFactory(nil, rec)
	failing := testutil.ErrService{Err: errors.New("boom")}
	prov := factory.wrap(config.Config{Provider: "stub"}, failing)

	_, err := prov.AddGame(context.Background(), providers.AddGameRequest{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if rec.ProviderCalls("stub") != 1 {
		t.Fatalf("expected a single attempt for a write, got %d", rec.ProviderCalls("stub"))
	}
}

func TestProviderFactoryExtractor(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	if factory.extractor(config.Config{}) != nil {
		t.Fatalf("expected no extractor without a pdf service url")
	}
	if factory.extractor(config.Config{PDF: config.PDFConfig{BaseURL: "http://pdf.local"}}) == nil {
		t.Fatalf("expected extractor when a pdf service url is set")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	cases := []struct {
		raw  string
		prov providers.SportsService
		want string
	}{
		{"ScoreStream", nil, "scorestream"},
		{"", fixture.New(), "fixture"},
		{"", nil, "provider"},
		{"  ", testutil.ErrService{}, "provider"},
	}
	for _, tc := range cases {
		if got := normalizeProviderName(tc.raw, tc.prov); got != tc.want {
			t.Fatalf("normalizeProviderName(%q): expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}
