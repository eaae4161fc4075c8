package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/virada/rolelist/internal/broadcast"
	"github.com/virada/rolelist/internal/database"
	"github.com/virada/rolelist/internal/server/middlewares"
	"github.com/virada/rolelist/internal/server/service"
)

// A Controller is an Inversion Of Control pattern used to init the server package.
type Controller struct {
	Version  string
	Database database.Client
	Hub      *broadcast.Hub
	// CORS params
	CORSOrigins []string
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())

	cors := middleware.DefaultCORSConfig
	if len(ctrl.CORSOrigins) > 0 {
		cors.AllowOrigins = ctrl.CORSOrigins
	}
	engine.Use(middleware.CORSWithConfig(cors))
	engine.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		// Compressing the websocket upgrade response would break the hijack.
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/stream"
		},
	}))

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	////////////
	// Router //
	////////////

	router := engine.Group("")
	started := time.Now()

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})
	router.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(started).Seconds(),
		})
	})

	//
	// item handlers
	//
	item := &item{
		items: service.NewItem(ctrl.Database, ctrl.Hub),
	}
	router.GET("/api/items", item.List)
	router.POST("/api/items", item.Create)
	router.GET("/api/items/:id", item.Get)
	router.PATCH("/api/items/:id", item.ToggleDone)
	router.DELETE("/api/items/:id", item.Delete)
	router.POST("/api/items/:id/comments", item.AddComment)
	router.DELETE("/api/items/:id/comments/:commentId", item.DeleteComment)

	//
	// realtime stream
	//
	stream := &stream{
		hub: ctrl.Hub,
	}
	router.GET("/stream", stream.Subscribe)

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
