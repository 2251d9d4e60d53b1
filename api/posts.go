package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kbukum/blogd/auth"
	apperrors "github.com/kbukum/blogd/errors"
	"github.com/kbukum/blogd/server"
	"github.com/kbukum/blogd/store"
	"github.com/kbukum/blogd/validation"
)

type postRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// CreatePost handles POST /posts. Ownership is taken from the resolved
// user, never from the payload.
func (h *Handlers) CreatePost(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		server.RespondWithError(c, apperrors.InvalidToken())
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	var post *store.Post
	err := h.db.WithTransaction(c.Request.Context(), func(tx *gorm.DB) error {
		var txErr error
		post, txErr = h.store.CreatePost(tx, user.ID, req.Title, req.Content)
		return txErr
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondCreated(c, post)
}

// UpdatePost handles PUT /posts/:id. The existence check runs strictly
// before the ownership check: probing a nonexistent id gets NOT_FOUND no
// matter who asks, and only a real post owned by someone else gets
// FORBIDDEN.
func (h *Handlers) UpdatePost(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		server.RespondWithError(c, apperrors.InvalidToken())
		return
	}

	id, err := idParam(c, "post")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	var post *store.Post
	err = h.db.WithTransaction(c.Request.Context(), func(tx *gorm.DB) error {
		var txErr error
		post, txErr = h.store.PostByID(tx, id)
		if txErr != nil {
			return txErr
		}
		if post.OwnerID != user.ID {
			return apperrors.Forbidden("Only the owner can modify this post.")
		}
		return h.store.UpdatePost(tx, post, req.Title, req.Content)
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, post)
}

// DeletePost handles DELETE /posts/:id with the same existence-then-
// ownership ordering as UpdatePost.
func (h *Handlers) DeletePost(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		server.RespondWithError(c, apperrors.InvalidToken())
		return
	}

	id, err := idParam(c, "post")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	err = h.db.WithTransaction(c.Request.Context(), func(tx *gorm.DB) error {
		post, txErr := h.store.PostByID(tx, id)
		if txErr != nil {
			return txErr
		}
		if post.OwnerID != user.ID {
			return apperrors.Forbidden("Only the owner can delete this post.")
		}
		return h.store.DeletePost(tx, post)
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, messageResponse{Message: "post deleted"})
}
