// Package handlers implements the import session HTTP API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/http/requestutil"
	"github.com/preston-bernstein/schedule-import-service/internal/logging"
	"github.com/preston-bernstein/schedule-import-service/internal/providers/pdfextract"
	"github.com/preston-bernstein/schedule-import-service/internal/schedule"
	"github.com/preston-bernstein/schedule-import-service/internal/store"
	"github.com/preston-bernstein/schedule-import-service/internal/submission"
	"github.com/preston-bernstein/schedule-import-service/internal/sweeper"
	"github.com/preston-bernstein/schedule-import-service/internal/wizard"
)

const (
	fileField     = "file"
	defaultsField = "defaults"
	mappingField  = "columnMapping"
	schoolField   = "school"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler wires HTTP routes to the import service.
type Handler struct {
	svc      *imports.Service
	logger   *slog.Logger
	statusFn func() sweeper.Status
}

// NewHandler constructs a Handler. statusFn may be nil.
func NewHandler(svc *imports.Service, logger *slog.Logger, statusFn func() sweeper.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// sessionView is a session plus the derived values clients render.
type sessionView struct {
	store.Session
	Counts  wizard.Counts       `json:"counts"`
	Job     string              `json:"job,omitempty"`
	Summary *submission.Summary `json:"summary,omitempty"`
}

func (h *Handler) view(sess store.Session) sessionView {
	v := sessionView{
		Session: sess,
		Counts:  sess.State.Counts(),
		Job:     h.svc.RunningJob(sess.ID),
	}
	if results := sess.State.Submission.Results; len(results) > 0 {
		summary := submission.Summarize(results)
		v.Summary = &summary
	}
	return v
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic once the session sweeper has run.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil || h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, http.StatusServiceUnavailable, "not ready", h.logger)
}

// Options lists the sports, segment types, squads and organizations clients can choose from.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	type sportOption struct {
		games.Option[games.Sport]
		SegmentTypes []games.SegmentType `json:"segmentTypes"`
	}
	sports := make([]sportOption, 0, len(games.Sports))
	for _, s := range games.Sports {
		sports = append(sports, sportOption{Option: s, SegmentTypes: s.Value.SegmentTypes()})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sports":        sports,
		"squads":        games.Squads,
		"organizations": games.Organizations,
		"defaults":      games.InitialDefaults(),
	}, h.logger)
}

// CreateImport starts a session from JSON rows or an uploaded CSV/Excel file.
func (h *Handler) CreateImport(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)

	var (
		in  imports.CreateInput
		err error
	)
	if requestutil.IsMultipart(r) {
		in, err = h.createFromUpload(w, r)
	} else {
		var p createPayload
		if err = decodePayload(w, r, &p); err == nil {
			in = p.input()
		}
	}
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}

	sess, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusCreated, h.view(sess), logger)
}

func (h *Handler) createFromUpload(w http.ResponseWriter, r *http.Request) (imports.CreateInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, schedule.MaxFileBytes+1<<20)
	if err := r.ParseMultipartForm(schedule.MaxFileBytes); err != nil {
		return imports.CreateInput{}, fmt.Errorf("%w: %v", imports.ErrInvalidInput, err)
	}
	file, header, err := r.FormFile(fileField)
	if err != nil {
		return imports.CreateInput{}, fmt.Errorf("%w: missing %q file", imports.ErrInvalidInput, fileField)
	}
	defer file.Close()

	var defaults defaultsPayload
	if err := formJSON(r, defaultsField, &defaults); err != nil {
		return imports.CreateInput{}, err
	}
	var mapping schedule.Mapping
	if err := formJSON(r, mappingField, &mapping); err != nil {
		return imports.CreateInput{}, err
	}

	table, err := schedule.Read(header.Filename, file)
	if err != nil {
		return imports.CreateInput{}, err
	}
	return imports.CreateInput{
		FileName: header.Filename,
		Table:    table,
		Mapping:  mapping,
		Defaults: defaults.update(),
	}, nil
}

// ExtractPDF forwards a PDF schedule to the extraction service and starts a session from
// the games it finds. A document covering several schools returns 409 with the choices.
func (h *Handler) ExtractPDF(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	r.Body = http.MaxBytesReader(w, r.Body, 11<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart upload", logger)
		return
	}
	file, header, err := r.FormFile(fileField)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file", logger)
		return
	}
	defer file.Close()

	var defaults defaultsPayload
	if err := formJSON(r, defaultsField, &defaults); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}

	sess, result, err := h.svc.CreateFromPDF(r.Context(), header.Filename, file, strings.TrimSpace(r.FormValue(schoolField)), defaults.update())
	if errors.Is(err, imports.ErrMultipleSchools) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   err.Error(),
			"schools": result.Schools,
		}, logger)
		return
	}
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		sessionView
		Extraction extractionSummary `json:"extraction"`
	}{h.view(sess), summarizeExtraction(result)}, logger)
}

type extractionSummary struct {
	MainTeam  string `json:"mainTeam"`
	Format    string `json:"format,omitempty"`
	Games     int    `json:"games"`
	Completed int    `json:"completed"`
}

func summarizeExtraction(res pdfextract.Result) extractionSummary {
	return extractionSummary{
		MainTeam:  res.MainTeam,
		Format:    res.Format,
		Games:     len(res.Games),
		Completed: res.CompletedCount(),
	}
}

// GetImport returns a session.
func (h *Handler) GetImport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess), h.logger)
}

// ResetImport cancels any running job and returns the session to its initial state.
func (h *Handler) ResetImport(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	sess, err := h.svc.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess), logger)
}

// UpdateDefaults merges the posted defaults into the session.
func (h *Handler) UpdateDefaults(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var p defaultsPayload
	if err := decodePayload(w, r, &p); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	sess, err := h.svc.UpdateDefaults(chi.URLParam(r, "id"), p.update())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess), logger)
}

// Resolve starts background team resolution.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	h.startJob(w, r, h.svc.StartResolve)
}

// Submit starts background submission of the selected, ready games.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.startJob(w, r, h.svc.StartSubmit)
}

func (h *Handler) startJob(w http.ResponseWriter, r *http.Request, start func(ctx context.Context, id string) error) {
	logger := loggerFromContext(r, h.logger)
	id := chi.URLParam(r, "id")
	if err := start(r.Context(), id); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	sess, err := h.svc.Get(id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "job accepted", logging.FieldSessionID, id)
	writeJSON(w, http.StatusAccepted, h.view(sess), logger)
}

// UpdateGame edits one row's date, time, scores or selection.
func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var p gamePayload
	if err := decodePayload(w, r, &p); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	sess, err := h.svc.UpdateGame(chi.URLParam(r, "id"), chi.URLParam(r, "gameID"), p.update())
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess), logger)
}

// ToggleGame flips one row's selection.
func (h *Handler) ToggleGame(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.ToggleGame(chi.URLParam(r, "id"), chi.URLParam(r, "gameID"))
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess), h.logger)
}

// SelectAll sets the selection of every ready row.
func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var p selectAllPayload
	if err := decodePayload(w, r, &p); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	sess, err := h.svc.SelectAll(chi.URLParam(r, "id"), *p.Selected)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess), logger)
}

// SearchSide runs a manual search for one side of a row.
func (h *Handler) SearchSide(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var p searchPayload
	if err := decodePayload(w, r, &p); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	side := games.Side(chi.URLParam(r, "side"))
	sess, err := h.svc.Search(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "gameID"), side, p.Query)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess), logger)
}

// SelectSide matches one side of a row with a team from its search results.
func (h *Handler) SelectSide(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var p selectPayload
	if err := decodePayload(w, r, &p); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	side := games.Side(chi.URLParam(r, "side"))
	sess, err := h.svc.Select(chi.URLParam(r, "id"), chi.URLParam(r, "gameID"), side, p.TeamID)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, h.view(sess), logger)
}

// ResultsCSV downloads the submission results as CSV.
func (h *Handler) ResultsCSV(w http.ResponseWriter, r *http.Request) {
	h.writeReport(w, r, "text/csv", "csv", submission.WriteCSV)
}

// ResultsXLSX downloads the submission results as an Excel workbook.
func (h *Handler) ResultsXLSX(w http.ResponseWriter, r *http.Request) {
	h.writeReport(w, r, xlsxMIME, "xlsx", submission.WriteXLSX)
}

type reportWriter func(w io.Writer, rows []games.GameRow, results []games.SubmissionResult) error

func (h *Handler) writeReport(w http.ResponseWriter, r *http.Request, contentType, ext string, write reportWriter) {
	logger := loggerFromContext(r, h.logger)
	id := chi.URLParam(r, "id")
	rows, results, err := h.svc.Results(id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="import-results-%s.%s"`, id, ext))
	w.WriteHeader(http.StatusOK)
	if err := write(w, rows, results); err != nil {
		logging.Error(logger, "failed to write report", err, logging.FieldSessionID, id)
	}
}

// formJSON decodes an optional JSON form field.
func formJSON(r *http.Request, field string, dst any) error {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: malformed %s: %v", imports.ErrInvalidInput, field, err)
	}
	return validatePayload(dst)
}
