package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// Deps is everything the router needs.
type Deps struct {
	Users      UserService
	Tasks      TaskService
	Subtasks   SubtaskService
	Catalog    CatalogService
	Tokens     TokenParser
	DB         Pinger
	Translator *apierrors.Translator
	Logger     logging.Logger

	AllowedOrigins []string
	SecureCookies  bool
}

// NewRouter builds the gin engine and wraps it in the CORS handler.
func NewRouter(d Deps) http.Handler {
	r := responder{tr: d.Translator, log: d.Logger}

	engine := gin.New()
	engine.Use(RequestLogger(d.Logger), Language(), Recovery(r))
	engine.NoRoute(func(c *gin.Context) {
		r.abort(c, http.StatusNotFound, apierrors.MsgNotFound, nil)
	})

	authH := NewAuthHandler(d.Users, r, d.SecureCookies)
	taskH := NewTaskHandler(d.Tasks, d.Subtasks, r)
	subH := NewSubtaskHandler(d.Subtasks, r)
	catH := NewCatalogHandler(d.Catalog, r)
	healthH := NewHealthHandler(d.DB)

	api := engine.Group("/api")
	{
		api.GET("/health", healthH.Check)
		api.POST("/login", authH.Login)
		api.POST("/register", authH.Register)
		api.POST("/refresh-token", authH.Refresh)
		api.GET("/users/count", authH.CountUsers)
	}

	secured := api.Group("", Authenticate(d.Tokens, r))

	// Controller paths are served both capitalized and lower-case.
	for _, name := range []string{"Tasks", "tasks"} {
		g := secured.Group("/" + name)
		g.GET("", taskH.List)
		g.POST("", taskH.Create)
		g.GET("/:id", taskH.Get)
		g.PUT("/:id", taskH.Update)
		g.DELETE("/:id", taskH.Delete)
		g.POST("/:id/labels/:labelId", taskH.AddLabel)
		g.DELETE("/:id/labels/:labelId", taskH.RemoveLabel)
		g.POST("/:id/subtask", taskH.CreateSubtask)
	}
	for _, name := range []string{"Subtasks", "subtasks"} {
		g := secured.Group("/" + name)
		g.GET("", subH.List)
		g.GET("/:id", subH.Get)
		g.PUT("/:id", subH.Update)
		g.DELETE("/:id", subH.Delete)
	}
	for _, name := range []string{"Labels", "labels"} {
		g := secured.Group("/" + name)
		g.GET("", catH.ListLabels)
		g.POST("", catH.CreateLabel)
	}
	for _, name := range []string{"Lists", "lists"} {
		g := secured.Group("/" + name)
		g.GET("", catH.ListLists)
		g.POST("", catH.CreateList)
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", headerReqID},
		ExposedHeaders:   []string{"Location", headerReqID},
		AllowCredentials: true,
		MaxAge:           300,
	})(engine)
}
