package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/EliasGomez98/PDF-Scrapping/internal/batch"
	"github.com/EliasGomez98/PDF-Scrapping/internal/common"
	"github.com/EliasGomez98/PDF-Scrapping/internal/export"
	"github.com/EliasGomez98/PDF-Scrapping/internal/extract"
)

const (
	maxUploadBytes = 256 << 20 // whole multipart body
	previewBytes   = 20_000    // per-document debug preview
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type batchResponse struct {
	BatchID   string          `json:"batch_id"`
	Fields    []string        `json:"fields"`
	Rows      []rowJSON       `json:"rows"`
	Errors    []extract.Error `json:"errors"`
	Previews  []batch.Preview `json:"previews,omitempty"`
	Processed int             `json:"processed"`
	Failed    int             `json:"failed"`
}

type rowJSON struct {
	Document string            `json:"document"`
	Values   map[string]string `json:"values"`
}

func (s *Server) batchJSON(res *batch.Result) batchResponse {
	out := batchResponse{
		BatchID:   res.BatchID.String(),
		Fields:    s.fields,
		Rows:      make([]rowJSON, 0, len(res.Records)),
		Errors:    res.Errors,
		Previews:  res.Previews,
		Processed: res.Processed,
		Failed:    res.Failed,
	}
	if out.Errors == nil {
		out.Errors = []extract.Error{}
	}
	for _, rec := range res.Records {
		out.Rows = append(out.Rows, rowJSON{Document: rec.Document, Values: rec.Values})
	}
	return out
}

// handleCreateBatch accepts a multipart upload of PDFs, runs extraction over
// them in upload order, and replaces the current batch with the result.
func (s *Server) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart body: "+err.Error())
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one PDF is required in the files field")
		return
	}

	uppercase := s.cfg.Extract.Uppercase
	if v := r.FormValue("uppercase"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "uppercase must be a boolean")
			return
		}
		uppercase = b
	}
	debug := false
	if v := r.FormValue("debug"); v != "" {
		debug, _ = strconv.ParseBool(v)
	}

	docs := make([]batch.Document, 0, len(files))
	for _, fh := range files {
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
			s.writeError(w, http.StatusBadRequest, "only PDF files are accepted: "+fh.Filename)
			return
		}
		f, err := fh.Open()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "cannot read upload "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "cannot read upload "+fh.Filename)
			return
		}
		docs = append(docs, batch.Document{Name: fh.Filename, Data: data})
	}

	opts := batch.Options{Uppercase: uppercase}
	if debug {
		opts.Preview = previewBytes
	}
	res := s.proc.Run(r.Context(), docs, opts)
	s.setCurrent(&res)

	s.logger.Info("server.batch.created",
		"batch_id", res.BatchID.String(),
		"documents", len(docs),
		"processed", res.Processed,
		"failed", res.Failed,
	)
	s.writeJSON(w, http.StatusOK, s.batchJSON(&res))
}

// handleCurrentBatch redisplays the most recent batch.
func (s *Server) handleCurrentBatch(w http.ResponseWriter, _ *http.Request) {
	res := s.currentBatch()
	if res == nil {
		s.writeError(w, http.StatusNotFound, "no batch has been processed yet")
		return
	}
	s.writeJSON(w, http.StatusOK, s.batchJSON(res))
}

// handleExport serializes the current batch to XLSX and streams it as a
// download. Export failure does not invalidate the batch.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	res := s.currentBatch()
	if res == nil {
		s.writeError(w, http.StatusNotFound, "no batch has been processed yet")
		return
	}

	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = s.cfg.Export.Prefix
	}

	blob, err := s.export.WriteXLSX(res.Records, s.fields, res.Errors)
	if err != nil {
		s.logger.Error("server.export.failed", "batch_id", res.BatchID.String(), "err", err)
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			s.writeError(w, http.StatusServiceUnavailable, appErr.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "export failed: "+err.Error())
		return
	}

	name := export.Filename(prefix, time.Now())
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob); err != nil {
		s.logger.Error("server.export.write.failed", "err", err)
	}
}
