package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "github.com/kbukum/blogd/errors"
	"github.com/kbukum/blogd/logger"
	"github.com/kbukum/blogd/server"
	"github.com/kbukum/blogd/store"
	"github.com/kbukum/blogd/validation"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterUser handles POST /users.
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	// Hashing happens outside the transaction; it is pure CPU work and
	// holding a session open across it buys nothing.
	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	var user *store.User
	err = h.db.WithTransaction(c.Request.Context(), func(tx *gorm.DB) error {
		var txErr error
		user, txErr = h.store.CreateUser(tx, req.Username, hash)
		return txErr
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.log.Info("User registered", logger.Fields(logger.FieldUserID, user.ID))
	server.RespondCreated(c, userResponse{ID: user.ID, Username: user.Username})
}

// GetUser handles GET /users/:id. The response never includes the
// password hash.
func (h *Handlers) GetUser(c *gin.Context) {
	id, err := idParam(c, "user")
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var user *store.User
	err = h.db.WithTransaction(c.Request.Context(), func(tx *gorm.DB) error {
		var txErr error
		user, txErr = h.store.UserByID(tx, id)
		return txErr
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, userResponse{ID: user.ID, Username: user.Username})
}

// Login handles POST /login. An unknown username and a wrong password
// produce the same failure so the endpoint cannot confirm which usernames
// exist.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	var user *store.User
	err := h.db.WithTransaction(c.Request.Context(), func(tx *gorm.DB) error {
		var txErr error
		user, txErr = h.store.UserByUsername(tx, req.Username)
		return txErr
	})
	if err != nil {
		// Only an unknown username is masked as bad credentials; an
		// infrastructure failure must not look like a wrong password.
		if store.IsNotFound(err) {
			err = apperrors.InvalidCredentials()
		}
		server.RespondWithError(c, err)
		return
	}

	if err := h.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		server.RespondWithError(c, apperrors.InvalidCredentials())
		return
	}

	accessToken, err := h.tokens.Issue(strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	h.log.Info("User logged in", logger.Fields(logger.FieldUserID, user.ID))
	server.RespondOK(c, tokenResponse{AccessToken: accessToken, TokenType: "bearer"})
}
