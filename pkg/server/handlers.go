package server

import (
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/labeler/pkg/buildinfo"
	"github.com/matzehuels/labeler/pkg/core/label"
	"github.com/matzehuels/labeler/pkg/errors"
	"github.com/matzehuels/labeler/pkg/layout"
	"github.com/matzehuels/labeler/pkg/pipeline"
)

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Scene       json.RawMessage    `json:"scene"`
	Interaction *label.Interaction `json:"interaction,omitempty"`
	Formats     []string           `json:"formats,omitempty"`
	Debug       bool               `json:"debug,omitempty"`
	VisibleOnly bool               `json:"visible_only,omitempty"`
	Scale       float64            `json:"scale,omitempty"`
	EmbedFont   bool               `json:"embed_font,omitempty"`
}

// LayoutResponse is the body of a successful POST /v1/layout. Text
// artifacts are returned as is, PNG as base64.
type LayoutResponse struct {
	RequestID string            `json:"request_id"`
	SceneHash string            `json:"scene_hash"`
	Layout    layout.Layout     `json:"layout"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
	Timing    Timing            `json:"timing"`
}

// Timing reports stage durations in milliseconds.
type Timing struct {
	ParseMS  float64 `json:"parse_ms"`
	LayoutMS float64 `json:"layout_ms"`
	RenderMS float64 `json:"render_ms"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req LayoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeErrorStatus(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if len(req.Scene) == 0 || string(req.Scene) == "null" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scene is required"))
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Data:        req.Scene,
		Interaction: req.Interaction,
		Formats:     req.Formats,
		Debug:       req.Debug,
		VisibleOnly: req.VisibleOnly,
		Scale:       req.Scale,
		EmbedFont:   req.EmbedFont,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := LayoutResponse{
		RequestID: RequestID(r.Context()),
		SceneHash: res.SceneHash,
		Layout:    res.Layout,
		Artifacts: make(map[string]string, len(res.Artifacts)),
		Cached:    res.CacheInfo.LayoutHit,
		Timing: Timing{
			ParseMS:  ms(res.Stats.ParseTime.Seconds()),
			LayoutMS: ms(res.Stats.LayoutTime.Seconds()),
			RenderMS: ms(res.Stats.RenderTime.Seconds()),
		},
	}
	if !req.Debug {
		resp.Layout.Candidates = nil
	}
	for format, data := range res.Artifacts {
		if format == pipeline.FormatPNG {
			resp.Artifacts[format] = base64.StdEncoding.EncodeToString(data)
		} else {
			resp.Artifacts[format] = string(data)
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func ms(seconds float64) float64 { return seconds * 1000 }

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorStatus(w, r, errors.HTTPStatus(err), err)
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
		msg = "internal error"
	}
	s.writeJSON(w, status, ErrorResponse{Error: msg, Code: code, RequestID: RequestID(r.Context())})
}
