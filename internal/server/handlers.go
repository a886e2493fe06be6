package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/export"
	"github.com/sells-group/reconcile-cli/internal/reconcile"
	"github.com/sells-group/reconcile-cli/internal/sheet"
)

// Multipart part names of the two uploads.
const (
	partLog    = "log"
	partReport = "report"
)

type errorResponse struct {
	Error string `json:"error"`
}

type datesRequest struct {
	Raw string `json:"raw"`
}

type normalizeResponse struct {
	Raw  string `json:"raw"`
	Date string `json:"date"`
}

type expandResponse struct {
	Raw   string   `json:"raw"`
	Dates []string `json:"dates"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReconcile accepts a multipart upload with "log" and "report" file
// parts and responds with the report in the requested format.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d MB", s.cfg.MaxUploadMB))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	format := export.FormatJSON
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logSrc, err := uploadSource(r.MultipartForm, partLog)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reportSrc, err := uploadSource(r.MultipartForm, partReport)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pair, err := sheet.LoadPair(r.Context(), logSrc, reportSrc, s.sheet)
	if err != nil {
		zap.L().Warn("server: load uploads failed", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	report := reconcile.Build(pair.Logs, pair.Reports, filter)
	zap.L().Info("server: reconciled",
		zap.String("report_id", report.ID),
		zap.Int("rows", report.Totals.SummaryRows),
		zap.Int("mismatch", report.Totals.Mismatch),
	)

	if format == export.FormatJSON {
		writeJSON(w, http.StatusOK, report)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format.Binary() {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "reconcile-"+report.ID+".xlsx"))
	}
	w.WriteHeader(http.StatusOK)
	if err := export.Write(w, format, report); err != nil {
		zap.L().Error("server: write report", zap.String("report_id", report.ID), zap.Error(err))
	}
}

func parseFilter(r *http.Request) (reconcile.Filter, error) {
	q := r.URL.Query()
	f := reconcile.Filter{
		ReportDates:  q["report_date"],
		ConfirmDates: q["confirm_date"],
	}
	if v := q.Get("mismatch_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return reconcile.Filter{}, eris.Errorf("invalid mismatch_only %q", v)
		}
		f.MismatchOnly = b
	}
	return f, nil
}

func uploadSource(form *multipart.Form, part string) (sheet.Source, error) {
	files := form.File[part]
	if len(files) == 0 {
		return sheet.Source{}, eris.Errorf("missing file part %q", part)
	}
	fh := files[0]
	return sheet.Source{
		Name: fh.Filename,
		Open: func(context.Context) (io.ReadCloser, error) {
			return fh.Open()
		},
	}, nil
}

func decodeDates(w http.ResponseWriter, r *http.Request) (datesRequest, bool) {
	var req datesRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}

func handleNormalize(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDates(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{
		Raw:  req.Raw,
		Date: reconcile.NormalizeConfirmedDate(req.Raw),
	})
}

func handleExpand(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDates(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, expandResponse{
		Raw:   req.Raw,
		Dates: reconcile.ExpandReportDates(req.Raw),
	})
}
