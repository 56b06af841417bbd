package pdfextract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestExtractUploadsFileAndDecodesGames(t *testing.T) {
	var gotSchool, gotName string
	var gotContent []byte
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, "/extract", req.URL.Path)
		gotSchool = req.URL.Query().Get("school")
		file, header, err := req.FormFile("file")
		require.NoError(t, err)
		gotName = header.Filename
		gotContent, _ = io.ReadAll(file)
		return respond(http.StatusOK, `{
			"success": true,
			"mainTeam": "Servite",
			"games": [
				{"date":"9/5/2026","time":"7:00 PM","homeTeam":"Servite","awayTeam":"Mater Dei","homeScore":null,"awayScore":null,"isCompleted":false},
				{"date":"8/29/2026","time":"7:00 PM","homeTeam":"Centennial","awayTeam":"Servite","homeScore":21,"awayScore":14,"isCompleted":true},
				{"date":"9/12/2026","homeTeam":"","awayTeam":"Servite"}
			]
		}`), nil
	})
	client := NewClient(Config{BaseURL: "http://pdf.local/", HTTPClient: &http.Client{Transport: rt}})

	res, err := client.Extract(context.Background(), "schedule.PDF", bytes.NewReader([]byte("%PDF-1.7")), " Servite ")
	require.NoError(t, err)
	require.Equal(t, "Servite", gotSchool)
	require.Equal(t, "schedule.PDF", gotName)
	require.Equal(t, []byte("%PDF-1.7"), gotContent)

	require.Len(t, res.Games, 2)
	require.Equal(t, 1, res.CompletedCount())
	require.Equal(t, 21, *res.Games[1].HomeScore)
	require.Nil(t, res.Games[0].HomeScore)
}

func TestExtractRejectsNonPDF(t *testing.T) {
	_, err := NewClient(Config{}).Extract(context.Background(), "schedule.csv", strings.NewReader("a,b"), "")
	require.ErrorIs(t, err, ErrNotPDF)
}

func TestExtractRejectsLargeFiles(t *testing.T) {
	big := bytes.Repeat([]byte("x"), maxPDFBytes+1)
	_, err := NewClient(Config{}).Extract(context.Background(), "big.pdf", bytes.NewReader(big), "")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestExtractMapsUpstreamDetail(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return respond(http.StatusBadRequest, `{"detail":"No games found in PDF."}`), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	_, err := client.Extract(context.Background(), "s.pdf", strings.NewReader("x"), "")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	require.Equal(t, http.StatusBadRequest, upstream.StatusCode)
	require.Equal(t, "No games found in PDF.", upstream.Detail)
}

func TestExtractReportsMultipleSchools(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.RawQuery != "" {
			t.Fatalf("expected no school filter, got %q", req.URL.RawQuery)
		}
		return respond(http.StatusOK, `{"success":false,"multipleSchools":true,"schools":["Servite","Mater Dei"],"games":[]}`), nil
	})
	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})

	res, err := client.Extract(context.Background(), "league.pdf", strings.NewReader("x"), "")
	require.NoError(t, err)
	require.True(t, res.MultipleSchools)
	require.Equal(t, []string{"Servite", "Mater Dei"}, res.Schools)
	require.Empty(t, res.Games)
}

func TestExtractWrapsTransportErrors(t *testing.T) {
	boom := errors.New("connection refused")
	client := NewClient(Config{HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})}})

	_, err := client.Extract(context.Background(), "s.pdf", strings.NewReader("x"), "")
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "pdf service unavailable")
}
