package handlers

import (
	"net/http"

	"freeworldfirst/internal/db"
	"freeworldfirst/internal/middleware"
	"freeworldfirst/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		comments: services.NewCommentService(db.DB),
	}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// Create posts a comment on an alternative.
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	comment, err := h.comments.Create(c.Param("id"), user.ID, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commentResponse{
		Comment: *comment,
		User:    comment.User.Public(),
	})
}

// Delete removes a comment. The service allows the author or an admin.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.comments.Delete(c.Param("id"), user.ID, user.IsAdmin); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
