package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	forumapp "github.com/fuadmd/WHH-SBG/internal/application/forum"
	identityapp "github.com/fuadmd/WHH-SBG/internal/application/identity"
	marketplaceapp "github.com/fuadmd/WHH-SBG/internal/application/marketplace"
	mediaapp "github.com/fuadmd/WHH-SBG/internal/application/media"
	notificationapp "github.com/fuadmd/WHH-SBG/internal/application/notification"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/auth"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/config"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/event"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/persistence"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/realtime"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/storage"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/handler"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestServer wires the full application against a test database. The GenAI
// assistant is left out because it needs a remote model endpoint.
type TestServer struct {
	DB     *TestDB
	Engine *gin.Engine
	Hub    *realtime.Hub

	UserRepo         *persistence.GormUserRepository
	PostRepo         *persistence.GormPostRepository
	CommentRepo      *persistence.GormCommentRepository
	ReactionRepo     *persistence.GormReactionRepository
	NotificationRepo *persistence.GormNotificationRepository
	BusinessRepo     *persistence.GormBusinessRepository
	ProductRepo      *persistence.GormProductRepository

	AuthService     *identityapp.AuthService
	PostService     *forumapp.PostService
	CommentService  *forumapp.CommentService
	ReactionService *forumapp.ReactionService
	InboxService    *notificationapp.InboxService
	BusinessService *marketplaceapp.BusinessService
	ProductService  *marketplaceapp.ProductService
	JWTService      *auth.JWTService
}

// NewTestServer builds the application stack on top of the given database.
func NewTestServer(t *testing.T, tdb *TestDB) *TestServer {
	t.Helper()

	log := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(tdb.DB)
	postRepo := persistence.NewGormPostRepository(tdb.DB)
	commentRepo := persistence.NewGormCommentRepository(tdb.DB)
	reactionRepo := persistence.NewGormReactionRepository(tdb.DB)
	notificationRepo := persistence.NewGormNotificationRepository(tdb.DB)
	businessRepo := persistence.NewGormBusinessRepository(tdb.DB)
	productRepo := persistence.NewGormProductRepository(tdb.DB)

	eventBus := event.NewInMemoryEventBus(log)
	require.NoError(t, eventBus.Start(context.Background()))
	t.Cleanup(func() {
		_ = eventBus.Stop(context.Background())
	})

	hub := realtime.NewHub(8, log)
	t.Cleanup(hub.Close)
	livePublisher := realtime.NewNotificationPublisher(hub, nil)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret-key-0123456789",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "sbg-integration",
	})

	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	moderationService := identityapp.NewModerationService(userRepo, log)

	postService := forumapp.NewPostService(postRepo, commentRepo, reactionRepo, notificationRepo, userRepo, eventBus)
	commentService := forumapp.NewCommentService(commentRepo, postRepo, userRepo, eventBus)
	reactionService := forumapp.NewReactionService(reactionRepo, postRepo, userRepo, eventBus)

	dispatcher := notificationapp.NewDispatcher(notificationRepo, userRepo, livePublisher, log)
	inboxService := notificationapp.NewInboxService(notificationRepo)
	eventBus.Subscribe(notificationapp.NewForumEventHandler(dispatcher, postRepo, commentRepo, log))

	businessService := marketplaceapp.NewBusinessService(businessRepo, userRepo, eventBus)
	productService := marketplaceapp.NewProductService(productRepo, businessRepo, userRepo, eventBus)
	searchService := marketplaceapp.NewSearchService(businessRepo)

	mediaService := mediaapp.NewService(storage.NewStubObjectStorage())

	engine := gin.New()
	router.NewRouter(engine, jwtService).
		Register(handler.NewSystemHandler("sbg-test", "test")).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewModerationHandler(moderationService)).
		Register(handler.NewPostHandler(postService)).
		Register(handler.NewCommentHandler(commentService)).
		Register(handler.NewReactionHandler(reactionService)).
		Register(handler.NewNotificationHandler(inboxService, hub, 30*time.Second)).
		Register(handler.NewMarketplaceHandler(searchService)).
		Register(handler.NewBusinessHandler(businessService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewMediaHandler(mediaService)).
		Setup()

	return &TestServer{
		DB:               tdb,
		Engine:           engine,
		Hub:              hub,
		UserRepo:         userRepo,
		PostRepo:         postRepo,
		CommentRepo:      commentRepo,
		ReactionRepo:     reactionRepo,
		NotificationRepo: notificationRepo,
		BusinessRepo:     businessRepo,
		ProductRepo:      productRepo,
		AuthService:      authService,
		PostService:      postService,
		CommentService:   commentService,
		ReactionService:  reactionService,
		InboxService:     inboxService,
		BusinessService:  businessService,
		ProductService:   productService,
		JWTService:       jwtService,
	}
}

// Request performs an HTTP request against the test server and decodes the
// response envelope. token may be empty for anonymous requests.
func (ts *TestServer) Request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.Engine.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope),
			"response body is not JSON: %s", rec.Body.String())
	}
	return rec, envelope
}

// SignUp registers a user through the API and returns the access token and
// the user ID.
func (ts *TestServer) SignUp(t *testing.T, name, email, password string) (string, string) {
	t.Helper()

	rec, envelope := ts.Request(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "signup failed: %s", rec.Body.String())

	data := envelope["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	return data["access_token"].(string), user["id"].(string)
}
