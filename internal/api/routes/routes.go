package routes

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/api/handlers"
	"github.com/yoockh/jobboard/internal/api/middleware"
)

type Deps struct {
	Templates *template.Template
	Sessions  *middleware.Sessions

	Jobs  *handlers.JobHandler
	Live  *handlers.LiveHandler
	Apply *handlers.ApplyHandler
	Auth  *handlers.AuthHandler

	// CORSAllowOrigins applies to /api; empty allows any origin.
	CORSAllowOrigins []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.SetHTMLTemplate(d.Templates)
	r.MaxMultipartMemory = 12 << 20

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	pages := r.Group("/")
	pages.Use(d.Sessions.Middleware())

	pages.GET("/", handlers.Home)

	pages.GET("/jobs", d.Jobs.Page)
	pages.POST("/jobs", d.Jobs.Save)
	pages.GET("/jobs/cards", d.Jobs.Cards)
	pages.GET("/jobs/search", d.Jobs.SearchPage)
	pages.GET("/jobs/live", d.Live.Serve)
	pages.GET("/jobs/:id/delete", d.Jobs.ConfirmDelete)
	pages.POST("/jobs/:id/delete", d.Jobs.Delete)

	pages.GET("/apply", d.Apply.Form)
	pages.POST("/apply", d.Apply.Submit)

	pages.GET("/register", d.Auth.RegisterForm)
	pages.POST("/register", d.Auth.Register)
	pages.GET("/login", d.Auth.LoginForm)
	pages.POST("/login", d.Auth.Login)
	pages.POST("/logout", d.Auth.Logout)

	api := r.Group("/api")
	api.Use(cors.New(corsConfig(d.CORSAllowOrigins)))
	// preflight is answered by the cors middleware; the route only makes it match
	api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	api.GET("/jobs", d.Jobs.APIList)
	api.GET("/jobs/search", d.Jobs.APISearch)
	api.GET("/jobs/:id", d.Jobs.APIGet)
	api.POST("/jobs", d.Jobs.APICreate)
	api.PUT("/jobs/:id", d.Jobs.APIUpdate)
	api.DELETE("/jobs/:id", d.Jobs.APIDelete)

	api.GET("/applications", d.Sessions.Middleware(), middleware.RequireUser(), d.Apply.APIList)
	api.POST("/applications", d.Apply.APICreate)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
