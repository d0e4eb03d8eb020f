package handlers

import (
	"fmt"
	"net/http"
	"time"

	"freeworldfirst/internal/db"
	"freeworldfirst/internal/middleware"
	"freeworldfirst/internal/models"
	"freeworldfirst/internal/services"
	"freeworldfirst/internal/utils"

	"github.com/gin-gonic/gin"
)

type AlternativeHandler struct {
	alternatives *services.AlternativeService
	votes        *services.VoteService
}

func NewAlternativeHandler() *AlternativeHandler {
	return &AlternativeHandler{
		alternatives: services.NewAlternativeService(db.DB),
		votes:        services.NewVoteService(db.DB),
	}
}

type createAlternativeRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Replaces    string `json:"replaces" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required,min=20,max=2000"`
	Reasons     string `json:"reasons" binding:"required,min=20,max=1000"`
	Benefits    string `json:"benefits" binding:"required,min=20,max=1000"`
	Website     string `json:"website" binding:"omitempty,url"`
	Category    string `json:"category" binding:"required"`
}

type updateAlternativeRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=100"`
	Replaces    *string `json:"replaces" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,min=20,max=2000"`
	Reasons     *string `json:"reasons" binding:"omitempty,min=20,max=1000"`
	Benefits    *string `json:"benefits" binding:"omitempty,min=20,max=1000"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Category    *string `json:"category" binding:"omitempty"`
}

type alternativeResponse struct {
	models.Alternative
	Submitter models.PublicUser `json:"submitter"`
}

type commentResponse struct {
	models.Comment
	User        models.PublicUser `json:"user"`
	ContentHTML string            `json:"contentHtml"`
}

type alternativeDetailResponse struct {
	alternativeResponse
	DescriptionHTML string            `json:"descriptionHtml"`
	Comments        []commentResponse `json:"comments"`
}

func toResponse(alt models.Alternative) alternativeResponse {
	return alternativeResponse{
		Alternative: alt,
		Submitter:   alt.Submitter.Public(),
	}
}

func toResponseList(alts []models.Alternative) []alternativeResponse {
	out := make([]alternativeResponse, len(alts))
	for i, alt := range alts {
		out[i] = toResponse(alt)
	}
	return out
}

// Create submits a new alternative. It enters the moderation queue and
// stays off the public listing until approved.
func (h *AlternativeHandler) Create(c *gin.Context) {
	var req createAlternativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	alt, err := h.alternatives.Create(user.ID, services.CreateAlternativeInput{
		Title:       req.Title,
		Replaces:    req.Replaces,
		Description: req.Description,
		Reasons:     req.Reasons,
		Benefits:    req.Benefits,
		Website:     req.Website,
		Category:    req.Category,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	alt.Submitter = *user
	c.JSON(http.StatusCreated, toResponse(*alt))
}

// List serves the public listing: approved alternatives, best score
// first, optionally filtered by category. Cached for a minute.
func (h *AlternativeHandler) List(c *gin.Context) {
	category := c.Query("category")

	cacheKey := fmt.Sprintf("alternatives:approved:%s", category)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if resp, ok := cached.([]alternativeResponse); ok {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	alts, err := h.alternatives.ListApproved(category)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	resp := toResponseList(alts)
	utils.GetCache().Set(cacheKey, resp, 1*time.Minute)
	c.JSON(http.StatusOK, resp)
}

// ListPending serves the moderation queue, newest first. Admin only.
func (h *AlternativeHandler) ListPending(c *gin.Context) {
	alts, err := h.alternatives.ListPending()
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponseList(alts))
}

// Detail serves one alternative with its submitter and comments.
func (h *AlternativeHandler) Detail(c *gin.Context) {
	alt, err := h.alternatives.Get(c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	comments := make([]commentResponse, len(alt.Comments))
	for i, comment := range alt.Comments {
		comments[i] = commentResponse{
			Comment:     comment,
			User:        comment.User.Public(),
			ContentHTML: utils.RenderMarkdown(comment.Content),
		}
	}

	c.JSON(http.StatusOK, alternativeDetailResponse{
		alternativeResponse: toResponse(*alt),
		DescriptionHTML:     utils.RenderMarkdown(alt.Description),
		Comments:            comments,
	})
}

// Categories lists the categories currently present among approved
// alternatives, for the listing filter.
func (h *AlternativeHandler) Categories(c *gin.Context) {
	categories, err := h.alternatives.Categories()
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Update applies a partial edit. The service decides whether the
// caller may touch the entry.
func (h *AlternativeHandler) Update(c *gin.Context) {
	var req updateAlternativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	alt, err := h.alternatives.Update(c.Param("id"), user.ID, user.IsAdmin, services.UpdateAlternativeInput{
		Title:       req.Title,
		Replaces:    req.Replaces,
		Description: req.Description,
		Reasons:     req.Reasons,
		Benefits:    req.Benefits,
		Website:     req.Website,
		Category:    req.Category,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	utils.GetCache().Purge()
	c.JSON(http.StatusOK, toResponse(*alt))
}

// Delete removes an alternative with its votes and comments.
func (h *AlternativeHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.alternatives.Delete(c.Param("id"), user.ID, user.IsAdmin); err != nil {
		HandleServiceError(c, err)
		return
	}

	utils.GetCache().Purge()
	c.JSON(http.StatusOK, gin.H{"message": "alternative deleted"})
}

// Approve moves an alternative into the public listing. Admin only.
func (h *AlternativeHandler) Approve(c *gin.Context) {
	alt, err := h.alternatives.Approve(c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	utils.GetCache().Purge()
	c.JSON(http.StatusOK, toResponse(*alt))
}

// Vote applies a toggle vote (?type=upvote|downvote) and returns the
// entry with its recomputed score.
func (h *AlternativeHandler) Vote(c *gin.Context) {
	user := middleware.CurrentUser(c)
	alt, err := h.votes.Apply(c.Param("id"), user.ID, c.Query("type"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	utils.GetCache().Purge()
	c.JSON(http.StatusOK, toResponse(*alt))
}
