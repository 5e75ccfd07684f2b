package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/infrastructure/auth"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on the public group (no
// authentication) and the protected group (valid access token required).
type RouteRegistrar interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	jwtService *auth.JWTService
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (default "v1")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, jwtService *auth.JWTService, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		jwtService: jwtService,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be wired during Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup wires all registered handlers under the versioned API prefix.
// Public routes still see JWT claims when a token is sent, so handlers can
// personalize read-only responses.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	public := api.Group("", middleware.OptionalJWTAuth(r.jwtService))
	protected := api.Group("", middleware.JWTAuth(r.jwtService))

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(public, protected)
	}
}
