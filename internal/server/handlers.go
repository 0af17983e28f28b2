package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/uccalint/pkg/buildinfo"
	"github.com/matzehuels/uccalint/pkg/errors"
	uccaio "github.com/matzehuels/uccalint/pkg/io"
	"github.com/matzehuels/uccalint/pkg/observability"
	"github.com/matzehuels/uccalint/pkg/passage"
	"github.com/matzehuels/uccalint/pkg/pipeline"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPDF: "application/pdf",
	pipeline.FormatPNG: "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	opts, err := s.validationOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.readPassage(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rep, err := s.Runner.Validate(r.Context(), p, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vopts, err := s.validationOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := pipeline.RenderOptions{
		Format:     q.Get("format"),
		Validation: vopts.Validation,
	}
	if opts.NodeIDs, err = boolParam(q.Get("node_ids"), false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Highlight, err = boolParam(q.Get("highlight"), false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scale: %q is not a number", v))
			return
		}
	}
	if err := opts.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.readPassage(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.Runner.Render(r.Context(), p, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "report storage is not configured"))
		return
	}
	rec, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "report storage is not configured"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidatePassageID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit: want a positive integer, got %q", v))
			return
		}
		limit = n
	}
	recs, err := s.Store.History(r.Context(), id, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"passage_id": id, "reports": recs})
}

// validationOptions merges query parameters over the server defaults.
func (s *Server) validationOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.Defaults
	var err error
	if opts.Validation.Linkage, err = boolParam(q.Get("linkage"), opts.Validation.Linkage); err != nil {
		return opts, err
	}
	if opts.Validation.Multigraph, err = boolParam(q.Get("multigraph"), opts.Validation.Multigraph); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh"), false); err != nil {
		return opts, err
	}
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "max: %q is not an integer", v)
		}
		opts.MaxDiagnostics = n
	}
	return opts, opts.Validate()
}

func (s *Server) readPassage(w http.ResponseWriter, r *http.Request) (*passage.Passage, error) {
	body := http.MaxBytesReader(w, r.Body, s.MaxBody)
	defer body.Close()
	p, err := uccaio.ReadJSON(body)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return nil, errors.Wrap(errors.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
	}
	return p, err
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "error", err)
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{
		Error:   true,
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func boolParam(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, errors.New(errors.ErrCodeInvalidInput, "%q is not a boolean", v)
	}
	return b, nil
}
