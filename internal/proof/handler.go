package proof

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prep-backend/internal/shared/server/respond"
	"prep-backend/internal/shared/storage/kv"
)

// Handler serves the ship checklist and proof links.
type Handler struct {
	Checklist *Checklist
	Links     *LinkStore
}

// NewHandler constructs a Handler backed by store.
func NewHandler(store kv.Store) *Handler {
	return &Handler{
		Checklist: &Checklist{Store: store},
		Links:     &LinkStore{Store: store},
	}
}

// RegisterRoutes attaches proof routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/proof/checklist", h.getChecklist)
	rg.PUT("/proof/checklist", h.putChecklist)
	rg.DELETE("/proof/checklist", h.resetChecklist)
	rg.GET("/proof/links", h.getLinks)
	rg.PUT("/proof/links", h.putLinks)
	rg.GET("/proof/submission", h.getSubmission)
}

type checklistResponse struct {
	Items        []Item `json:"items"`
	State        State  `json:"state"`
	Passed       int    `json:"passed"`
	Total        int    `json:"total"`
	ShipUnlocked bool   `json:"shipUnlocked"`
}

func checklistBody(state State) checklistResponse {
	return checklistResponse{
		Items:        Items,
		State:        state,
		Passed:       state.Passed(),
		Total:        len(Items),
		ShipUnlocked: state.ShipUnlocked(),
	}
}

func (h *Handler) getChecklist(c *gin.Context) {
	state, err := h.Checklist.Load(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load checklist", nil)
		return
	}
	respond.OK(c, checklistBody(state))
}

func (h *Handler) putChecklist(c *gin.Context) {
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	state, err := h.Checklist.Save(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to save checklist", nil)
		return
	}
	respond.OK(c, checklistBody(state))
}

func (h *Handler) resetChecklist(c *gin.Context) {
	state, err := h.Checklist.Reset(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to reset checklist", nil)
		return
	}
	respond.OK(c, checklistBody(state))
}

type linksResponse struct {
	Links    Links `json:"links"`
	Complete bool  `json:"complete"`
}

func (h *Handler) getLinks(c *gin.Context) {
	links, err := h.Links.Load(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load links", nil)
		return
	}
	respond.OK(c, linksResponse{Links: links, Complete: links.Complete()})
}

func (h *Handler) putLinks(c *gin.Context) {
	var req Links
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	links, err := h.Links.Save(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidLink) {
			details := make([]map[string]string, 0, 3)
			for _, field := range req.trimmed().InvalidFields() {
				details = append(details, map[string]string{"field": field, "issue": "invalid_url"})
			}
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrInvalidLink.Error(), details)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to save links", nil)
		return
	}
	respond.OK(c, linksResponse{Links: links, Complete: links.Complete()})
}

func (h *Handler) getSubmission(c *gin.Context) {
	links, err := h.Links.Load(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load links", nil)
		return
	}
	text, ok := SubmissionText(links)
	if !ok {
		respond.Error(c, http.StatusConflict, "validation_error", "all three proof links must be valid http(s) URLs", nil)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
