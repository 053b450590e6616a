package http

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/usecase"
	"github.com/workforce-labs/caseflow/pkg/utils/errutil"
	"github.com/workforce-labs/caseflow/pkg/utils/safe"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory
const maxUploadMemory = 10 << 20

func caseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "caseID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(model.ErrValidation, "case id must be an integer", goerr.V("input", raw))
	}
	return id, nil
}

type createCaseRequest struct {
	CaseType     string `json:"caseType"`
	ReporterID   string `json:"reporterId"`
	RespondentID string `json:"respondentId"`
	CoachID      string `json:"coachId"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	Remarks      string `json:"remarks"`
}

func (req *createCaseRequest) toInput() (*usecase.CreateCaseInput, error) {
	caseType, err := types.ParseCaseType(req.CaseType)
	if err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "unparseable case type", goerr.V("input", req.CaseType))
	}
	return &usecase.CreateCaseInput{
		CaseType:     caseType,
		ReporterID:   req.ReporterID,
		RespondentID: req.RespondentID,
		CoachID:      req.CoachID,
		Category:     req.Category,
		Level:        req.Level,
		Remarks:      req.Remarks,
	}, nil
}

// handleCreateCase accepts a JSON body, or a multipart form when the
// submission bundles evidence files
func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in *usecase.CreateCaseInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "malformed multipart form"))
			return
		}
		req := createCaseRequest{
			CaseType:     r.FormValue("caseType"),
			ReporterID:   r.FormValue("reporterId"),
			RespondentID: r.FormValue("respondentId"),
			CoachID:      r.FormValue("coachId"),
			Category:     r.FormValue("category"),
			Level:        r.FormValue("level"),
			Remarks:      r.FormValue("remarks"),
		}
		parsed, err := req.toInput()
		if err != nil {
			errutil.HandleHTTP(ctx, w, err)
			return
		}
		in = parsed

		files := r.MultipartForm.File["evidence"]
		for _, fh := range files {
			up, closeFn, err := openUpload(fh)
			if err != nil {
				errutil.HandleHTTP(ctx, w, err)
				return
			}
			defer closeFn()
			in.Evidence = append(in.Evidence, up)
		}
	} else {
		var req createCaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "malformed request body"))
			return
		}
		parsed, err := req.toInput()
		if err != nil {
			errutil.HandleHTTP(ctx, w, err)
			return
		}
		in = parsed
	}

	created, err := s.uc.Case.CreateCase(ctx, in)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

// handleListCases serves the role-scoped dashboard views
func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter, err := viewFilter(q.Get("view"), q)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	cases, err := s.uc.Case.ListCases(ctx, filter)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cases": cases})
}

func viewFilter(view string, q map[string][]string) (usecase.Filter, error) {
	get := func(key string) string {
		if vs := q[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	switch view {
	case "":
		return nil, nil
	case "hr-active":
		return usecase.HRActive, nil
	case "hr-history":
		from, to, err := dateRange(get("from"), get("to"))
		if err != nil {
			return nil, err
		}
		return usecase.HRHistory(get("q"), from, to), nil
	case "compliance-active":
		return usecase.ComplianceActive(get("requester")), nil
	case "compliance-history":
		return usecase.ComplianceHistory, nil
	case "reporter-history":
		reporter := get("reporter")
		if reporter == "" {
			return nil, goerr.Wrap(model.ErrValidation, "reporter is required for reporter-history")
		}
		return usecase.ReporterHistory(reporter), nil
	default:
		return nil, goerr.Wrap(model.ErrValidation, "unknown view", goerr.V("view", view))
	}
}

// dateRange parses inclusive yyyy-mm-dd bounds; the upper bound covers the
// whole day
func dateRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	var from, to time.Time
	if fromRaw != "" {
		parsed, err := time.Parse("2006-01-02", fromRaw)
		if err != nil {
			return from, to, goerr.Wrap(model.ErrValidation, "invalid from date", goerr.V("input", fromRaw))
		}
		from = parsed
	}
	if toRaw != "" {
		parsed, err := time.Parse("2006-01-02", toRaw)
		if err != nil {
			return from, to, goerr.Wrap(model.ErrValidation, "invalid to date", goerr.V("input", toRaw))
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func (s *Server) handleListOverdue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cases, err := s.uc.Case.ListOverdue(ctx, time.Now().UTC())
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cases": cases})
}

type viewCaseResponse struct {
	Case           *model.Case `json:"case"`
	JustMarkedRead bool        `json:"justMarkedRead"`
}

// handleViewCase fetches a case; with ?role= it also marks the viewer's
// read flag when that role holds the next move
func (s *Server) handleViewCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	roleRaw := r.URL.Query().Get("role")
	if roleRaw == "" {
		c, err := s.uc.Case.GetCase(ctx, id)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err)
			return
		}
		respondJSON(w, r, http.StatusOK, viewCaseResponse{Case: c})
		return
	}

	role, err := types.ParseRole(roleRaw)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "unparseable role", goerr.V("input", roleRaw)))
		return
	}

	c, marked, err := s.uc.Case.ViewCase(ctx, id, role)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, viewCaseResponse{Case: c, JustMarkedRead: marked})
}

func (s *Server) handleDeleteCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	requester := r.URL.Query().Get("requester")
	if requester == "" {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "requester is required"))
		return
	}

	if err := s.uc.Case.DeleteCase(ctx, id, requester); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTransition applies a guarded transition. The body is a multipart
// form carrying expectedStatus, the actor, the action's fields, and an
// optional file part.
func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	action, err := types.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "unparseable action",
			goerr.V("input", chi.URLParam(r, "action"))))
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "malformed multipart form"))
		return
	}

	in := &usecase.TransitionInput{
		Action:         action,
		ExpectedStatus: r.FormValue("expectedStatus"),
		ActorID:        r.FormValue("actor"),
		InvalidReason:  r.FormValue("invalidReason"),
		Explanation:    r.FormValue("explanation"),
		AckMessage:     r.FormValue("ackMessage"),
	}

	if raw := r.FormValue("hearingDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "invalid hearingDate",
				goerr.V("input", raw)))
			return
		}
		in.HearingDate = parsed
	}
	if raw := r.FormValue("witnesses"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Witnesses); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "invalid witnesses payload"))
			return
		}
	}

	if fhs := r.MultipartForm.File["file"]; len(fhs) > 0 {
		up, closeFn, err := openUpload(fhs[0])
		if err != nil {
			errutil.HandleHTTP(ctx, w, err)
			return
		}
		defer closeFn()
		in.Upload = up
	}

	updated, err := s.uc.Case.Transition(ctx, id, in)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleAttachEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "malformed multipart form"))
		return
	}

	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(model.ErrValidation, "evidence file is required"))
		return
	}

	up, closeFn, err := openUpload(fhs[0])
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	defer closeFn()

	updated, err := s.uc.Case.AttachEvidence(ctx, id, r.FormValue("actor"), up)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := caseID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	entries, err := s.uc.Case.AuditTrail(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"entries": entries})
}

// openUpload opens a multipart file as an UploadInput; the returned func
// closes the underlying file
func openUpload(fh *multipart.FileHeader) (*usecase.UploadInput, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, goerr.Wrap(model.ErrValidation, "failed to open uploaded file",
			goerr.V("file_name", fh.Filename))
	}
	closeFn := func() {
		safe.Close(context.Background(), f)
	}
	return &usecase.UploadInput{
		FileName: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Reader:   f,
	}, closeFn, nil
}
