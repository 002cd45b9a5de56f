package web

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/printerm/printerm/pkg/config"
	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/history"
	"github.com/printerm/printerm/pkg/logging"
	"github.com/printerm/printerm/pkg/preview"
	"github.com/printerm/printerm/pkg/render"
)

type templateResponse struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Variables   []variableResponse `json:"variables"`
	HasScript   bool               `json:"has_script"`
}

type variableResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Markdown    bool   `json:"markdown"`
}

type previewResponse struct {
	Success bool   `json:"success"`
	Preview string `json:"preview,omitempty"`
	Error   string `json:"error,omitempty"`
}

type validateResponse struct {
	Valid   bool     `json:"valid"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type printResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type settingsPayload struct {
	IPAddress            string `json:"ip_address"`
	CharsPerLine         int    `json:"chars_per_line"`
	EnableSpecialLetters bool   `json:"enable_special_letters"`
	CheckForUpdates      bool   `json:"check_for_updates"`
}

type settingsRequest struct {
	IPAddress            *string `json:"ip_address"`
	CharsPerLine         *int    `json:"chars_per_line"`
	EnableSpecialLetters *bool   `json:"enable_special_letters"`
	CheckForUpdates      *bool   `json:"check_for_updates"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.templates.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": userMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": summaries})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.templates.Load(r.PathValue("name"))
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": userMessage(err)})
		return
	}

	resp := templateResponse{
		Name:        tmpl.Name,
		Description: tmpl.Description,
		Variables:   make([]variableResponse, 0, len(tmpl.Variables)),
		HasScript:   tmpl.HasScript(),
	}
	for _, v := range tmpl.Variables {
		resp.Variables = append(resp.Variables, variableResponse{
			Name:        v.Name,
			Description: v.Description,
			Required:    v.Required,
			Markdown:    v.Markdown,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.templates.Load(r.PathValue("name"))
	if err != nil {
		writeJSON(w, statusFor(err), previewResponse{Error: userMessage(err)})
		return
	}

	supplied, err := readBindings(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, previewResponse{Error: userMessage(err)})
		return
	}

	runs, err := s.renderer.Render(r.Context(), tmpl, supplied)
	if err != nil {
		writeJSON(w, statusFor(err), previewResponse{Error: userMessage(err)})
		return
	}

	cfg, err := s.config()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, previewResponse{Error: err.Error()})
		return
	}

	var rendered string
	if r.URL.Query().Get("format") == "html" {
		rendered, err = preview.HTML(runs)
	} else {
		rendered, err = preview.Text(runs, cfg.CharsPerLine())
	}
	if err != nil {
		writeJSON(w, statusFor(err), previewResponse{Error: userMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{Success: true, Preview: rendered})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.templates.Load(r.PathValue("name"))
	if err != nil {
		writeJSON(w, statusFor(err), validateResponse{Errors: []string{userMessage(err)}})
		return
	}

	supplied, err := readBindings(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validateResponse{Errors: []string{userMessage(err)}})
		return
	}

	if err := render.Validate(tmpl, supplied); err != nil {
		writeJSON(w, http.StatusOK, validateResponse{Errors: validationErrors(err)})
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Message: "Template validation successful"})
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	tmpl, err := s.templates.Load(name)
	if err != nil {
		writeJSON(w, statusFor(err), printResponse{Error: userMessage(err)})
		return
	}

	supplied, err := readBindings(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, printResponse{Error: userMessage(err)})
		return
	}

	runs, err := s.renderer.Render(r.Context(), tmpl, supplied)
	if err != nil {
		writeJSON(w, statusFor(err), printResponse{Error: userMessage(err)})
		return
	}

	cfg, err := s.config()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, printResponse{Error: err.Error()})
		return
	}

	p, err := s.newPrinter(cfg)
	if err != nil {
		writeJSON(w, statusFor(err), printResponse{Error: userMessage(err)})
		return
	}

	printErr := p.Print(r.Context(), runs)
	jobID := s.recordJob(r, cfg, name, runs, printErr)

	if printErr != nil {
		writeJSON(w, statusFor(printErr), printResponse{JobID: jobID, Error: userMessage(printErr)})
		return
	}
	writeJSON(w, http.StatusOK, printResponse{Success: true, JobID: jobID})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	jobs := []*history.Job{}
	if s.history != nil {
		limit := parseInt(r.URL.Query().Get("limit"))
		listed, err := s.history.List(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": userMessage(err)})
			return
		}
		if listed != nil {
			jobs = listed
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.config()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settingsFrom(cfg))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Request body is not valid JSON"})
		return
	}

	values := map[string]interface{}{}
	if req.IPAddress != nil {
		values["printer.ip_address"] = *req.IPAddress
	}
	if req.CharsPerLine != nil {
		if *req.CharsPerLine <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid number for chars per line."})
			return
		}
		values["printer.chars_per_line"] = *req.CharsPerLine
	}
	if req.EnableSpecialLetters != nil {
		values["printer.enable_special_letters"] = *req.EnableSpecialLetters
	}
	if req.CheckForUpdates != nil {
		values["updates.check_for_updates"] = *req.CheckForUpdates
	}

	if len(values) > 0 {
		if err := config.SetValues(s.configPath, values); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": userMessage(err)})
			return
		}
	}

	cfg, err := s.config()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settingsFrom(cfg))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// recordJob writes the print attempt to history and returns the job id,
// or an empty string when history is disabled. Recording failures are
// logged, never surfaced; the print outcome matters more.
func (s *Server) recordJob(r *http.Request, cfg *config.Config, template string, runs []render.Run, printErr error) string {
	if s.history == nil {
		return ""
	}

	job := &history.Job{
		Template: template,
		Target:   cfg.Printer.IPAddress,
		Status:   history.StatusPrinted,
		Chars:    render.CharCount(runs),
	}
	if printErr != nil {
		job.Status = history.StatusFailed
		job.Error = printErr.Error()
	}

	if err := s.history.Record(r.Context(), job); err != nil {
		logging.GetLogger("web").Warn().Err(err).
			Str("template", template).
			Msg("Failed to record print job")
		return ""
	}
	return job.ID
}

func settingsFrom(cfg *config.Config) settingsPayload {
	return settingsPayload{
		IPAddress:            cfg.Printer.IPAddress,
		CharsPerLine:         cfg.CharsPerLine(),
		EnableSpecialLetters: cfg.Printer.EnableSpecialLetters,
		CheckForUpdates:      cfg.Updates.CheckForUpdates,
	}
}

// readBindings decodes the request body as a string map; an empty body
// counts as no values, matching a form submitted without input.
func readBindings(r *http.Request) (map[string]string, error) {
	defer r.Body.Close()

	var supplied map[string]string
	if err := json.NewDecoder(r.Body).Decode(&supplied); err != nil {
		if stderrors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, errors.ErrInvalidInput,
			"Request body is not a JSON object of strings")
	}
	if supplied == nil {
		supplied = map[string]string{}
	}
	return supplied, nil
}

// validationErrors pulls the per-field messages out of an exhaustive
// validation error.
func validationErrors(err error) []string {
	if details := errors.GetErrorDetails(err); details != nil {
		if messages, ok := details["errors"].([]string); ok && len(messages) > 0 {
			return messages
		}
	}
	return []string{userMessage(err)}
}

// userMessage strips the error-code prefix for API responses.
func userMessage(err error) string {
	var perr *errors.PrintermError
	if stderrors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}

func statusFor(err error) int {
	switch errors.GetErrorCode(err) {
	case errors.ErrTemplateNotFound, errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrValidation, errors.ErrInvalidInput, errors.ErrConfigValid:
		return http.StatusBadRequest
	case errors.ErrScriptNotFound, errors.ErrScriptExecution, errors.ErrScriptTimeout:
		return http.StatusBadRequest
	case errors.ErrPrintTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
