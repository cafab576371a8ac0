package analyses

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"prep-backend/internal/extract"
	"prep-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
// analyzeMW runs in front of the routes that invoke the engine.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, analyzeMW ...gin.HandlerFunc) {
	rg.POST("/analyses", withMiddleware(analyzeMW, h.createAnalysis)...)
	rg.POST("/analyses/upload", withMiddleware(analyzeMW, h.uploadAnalysis)...)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/active", h.activeAnalysis)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.PATCH("/analyses/:id/confidence", h.setConfidence)
	rg.GET("/analyses/:id/export", h.exportAnalysis)
}

type confidenceRequest struct {
	Skill      string `json:"skill"`
	Confidence string `json:"confidence"`
}

func (h *Handler) createAnalysis(c *gin.Context) {
	var req AnalyzeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
		return
	}
	h.analyze(c, req)
}

func (h *Handler) uploadAnalysis(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", []map[string]string{
			{"field": "file", "issue": "missing"},
		})
		return
	}
	f, err := header.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}
	defer f.Close()

	text, err := extract.JobDescription(c.Request.Context(), f, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		log.Printf("jd upload rejected file=%q size=%d: %v", header.Filename, header.Size, err)
		switch {
		case errors.Is(err, extract.ErrTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeValidation, "file is too large", nil)
		case errors.Is(err, extract.ErrUnsupported):
			respond.Error(c, http.StatusUnsupportedMediaType, ErrorCodeValidation, "only PDF, DOCX and plain text files are supported", nil)
		case errors.Is(err, extract.ErrEmptyText):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "no text could be read from the file", nil)
		default:
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		}
		return
	}

	h.analyze(c, AnalyzeInput{
		JDText:  text,
		Company: c.PostForm("company"),
		Role:    c.PostForm("role"),
	})
}

func (h *Handler) analyze(c *gin.Context, in AnalyzeInput) {
	result, err := h.Svc.Analyze(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "failed to analyze job description")
		return
	}
	resp := gin.H{"analysis": result.Entry}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	respond.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	entries, warning, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed to list analyses")
		return
	}
	items := make([]Summary, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.Summarize())
	}
	resp := gin.H{"items": items}
	if warning != "" {
		resp["warning"] = warning
	}
	respond.OK(c, resp)
}

func (h *Handler) activeAnalysis(c *gin.Context) {
	entry, err := h.Svc.Open(c.Request.Context(), "")
	if err != nil {
		writeError(c, err, "failed to fetch analysis")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "analysis id is required", nil)
		return
	}
	entry, err := h.Svc.Open(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to fetch analysis")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) setConfidence(c *gin.Context) {
	var req confidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
		return
	}
	skill := strings.TrimSpace(req.Skill)
	if skill == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "skill is required", []map[string]string{
			{"field": "skill", "issue": "missing"},
		})
		return
	}
	entry, err := h.Svc.SetConfidence(c.Request.Context(), c.Param("id"), skill, req.Confidence)
	if err != nil {
		writeError(c, err, "failed to update confidence")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) exportAnalysis(c *gin.Context) {
	out, err := h.Svc.Export(c.Request.Context(), c.Param("id"), c.Query("section"))
	if err != nil {
		writeError(c, err, "failed to export analysis")
		return
	}
	if out.ArchiveKey != "" {
		c.Header("X-Archive-Key", out.ArchiveKey)
	}
	if download := c.Query("download"); download == "1" || strings.EqualFold(download, "true") {
		c.Header("Content-Disposition", `attachment; filename="`+out.FileName+`"`)
	}
	c.Data(http.StatusOK, reportMIMEType, []byte(out.Text))
}

func withMiddleware(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, h)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrJDRequired):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "Paste a job description to analyze.", []map[string]string{
			{"field": "jdText", "issue": "required"},
		})
	case errors.Is(err, ErrInvalidConfidence):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), []map[string]string{
			{"field": "confidence", "issue": "invalid"},
		})
	case errors.Is(err, ErrUnknownSkill):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), []map[string]string{
			{"field": "skill", "issue": "unknown"},
		})
	case errors.Is(err, ErrUnknownSection):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), gin.H{"sections": Sections})
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "analysis not found", nil)
	case errors.Is(err, ErrInvalidEntry):
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, fallback, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, fallback, nil)
	}
}
