// Package api implements blogd's HTTP handlers: user registration, login,
// and the owner-guarded post CRUD. Every handler does its storage work
// inside a single per-request transaction, so any failure rolls the whole
// request back and no handler ever commits before its checks have passed.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/blogd/auth"
	"github.com/kbukum/blogd/auth/password"
	"github.com/kbukum/blogd/auth/token"
	"github.com/kbukum/blogd/database"
	apperrors "github.com/kbukum/blogd/errors"
	"github.com/kbukum/blogd/logger"
	"github.com/kbukum/blogd/store"
)

// Handlers bundles the dependencies the route handlers need.
type Handlers struct {
	db       *database.DB
	store    *store.Store
	hasher   password.Hasher
	tokens   *token.Service
	resolver *auth.Resolver
	log      *logger.Logger
}

// New creates the handler set.
func New(db *database.DB, st *store.Store, hasher password.Hasher, tokens *token.Service, resolver *auth.Resolver, log *logger.Logger) *Handlers {
	return &Handlers{
		db:       db,
		store:    st,
		hasher:   hasher,
		tokens:   tokens,
		resolver: resolver,
		log:      log.WithComponent("api"),
	}
}

// Register mounts all routes on the engine. Post mutations sit behind
// RequireAuth; everything else is public.
func (h *Handlers) Register(engine *gin.Engine) {
	engine.GET("/", h.Hello)
	engine.GET("/health", h.Health)
	engine.POST("/health", h.Health)
	engine.GET("/hello", h.Hello)

	engine.POST("/users", h.RegisterUser)
	engine.GET("/users/:id", h.GetUser)
	engine.POST("/login", h.Login)

	posts := engine.Group("/posts", auth.RequireAuth(h.resolver))
	posts.POST("", h.CreatePost)
	posts.PUT("/:id", h.UpdatePost)
	posts.DELETE("/:id", h.DeletePost)
}

// idParam parses the :id path parameter. A non-numeric id can't name any
// resource, so it reports the same not-found the caller would get for a
// number with no row behind it.
func idParam(c *gin.Context, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NotFound(resource)
	}
	return uint(id), nil
}
