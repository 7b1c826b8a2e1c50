package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/stickers/internal/core"
	"github.com/JonMunkholm/stickers/internal/sheet"
	"github.com/JonMunkholm/stickers/internal/web/templates"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	templateFileName = "equipment_template.xlsx"
	multipartMemory  = 32 << 20
	formOverhead     = 1 << 20
)

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := templates.IndexData{
		Templates:       s.service.Templates(),
		DefaultTemplate: s.cfg.Stickers.DefaultTemplate,
		MaxNameLength:   s.cfg.Stickers.MaxNameLength,
		MinNameLength:   core.MinNameLength,
		MaxNameLimit:    core.MaxNameLengthLimit,
		MaxFileSizeMB:   s.cfg.Upload.MaxFileSize >> 20,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Index(data).Render(r.Context(), w); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
	}
}

// handleHealth reports liveness and the job limiter state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{
		"status": "ok",
		"jobs":   s.service.LimiterStatus(),
	})
}

// handleListTemplates returns the grid template catalog, default first.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.service.Templates())
}

// handleDownloadTemplate serves an empty workbook with the expected header row.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := sheet.WriteTemplate(&buf); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", templateFileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// handlePreview ingests the upload and reports the page summary without rendering.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	result, err := s.service.Preview(r.Context(), req)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = templates.PreviewMessages(result).Render(r.Context(), w)
		return
	}
	writeJSON(w, r, result)
}

// handleRenderStickers renders the upload to PDF and returns it as a download.
// The PDF is buffered so a failed render still gets a proper error response.
func (s *Server) handleRenderStickers(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	var buf bytes.Buffer
	batch, err := s.service.Render(r.Context(), req, &buf)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.cfg.Stickers.Filename))
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	h.Set("X-Run-ID", batch.RunID)
	h.Set("X-Sticker-Records", strconv.Itoa(len(batch.Records)))
	h.Set("X-Sticker-Pages", strconv.Itoa(batch.Plan.TotalPages()))
	_, _ = w.Write(buf.Bytes())
}

// handleHistory lists recent runs, newest first. ?limit= caps the count.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := s.service.History(r.Context(), parseIntParam(r, "limit", core.DefaultHistoryLimit))
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []core.Run{}
	}
	writeJSON(w, r, runs)
}

// readUpload parses the multipart form: file, template and max_name_length.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (core.Request, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+formOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return core.Request{}, fmt.Errorf("%w: limit %d bytes", core.ErrFileTooLarge, maxSize)
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return core.Request{}, core.ErrNoFile
		}
		return core.Request{}, fmt.Errorf("%w: %v", core.ErrFileRead, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return core.Request{}, core.ErrNoFile
	}
	defer file.Close()

	if header.Size > maxSize {
		return core.Request{}, fmt.Errorf("%w: %d bytes (limit %d)", core.ErrFileTooLarge, header.Size, maxSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return core.Request{}, fmt.Errorf("%w: %v", core.ErrFileRead, err)
	}

	maxName, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("max_name_length")))

	return core.Request{
		FileName:      header.Filename,
		Data:          data,
		Template:      strings.TrimSpace(r.FormValue("template")),
		MaxNameLength: maxName,
	}, nil
}

// parseIntParam reads a positive integer query parameter.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil || val <= 0 {
		return defaultVal
	}
	return val
}
