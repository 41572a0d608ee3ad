package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/config"
	"github.com/rutasloja/rutas-backend/internal/app/controller"
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/middleware"
)

// Controllers groups every HTTP handler set mounted by the router.
type Controllers struct {
	Auth       *controller.AuthController
	Category   *controller.CategoryController
	Geo        *controller.GeoController
	Place      *controller.PlaceController
	Route      *controller.RouteController
	RouteStop  *controller.RouteStopController
	SavedRoute *controller.SavedRouteController
	Favorite   *controller.FavoriteController
	Review     *controller.ReviewController
	Event      *controller.EventController
	Upload     *controller.UploadController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	metrics        *middleware.Metrics
	config         *config.Config
}

func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	metrics *middleware.Metrics,
	cfg *config.Config,
) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		metrics:        metrics,
		config:         cfg,
	}
}

func (r *Router) Setup() (*gin.Engine, error) {
	gin.SetMode(r.config.Server.GinMode)

	if err := middleware.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(r.metrics.Middleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Rutas API is running",
		})
	})
	router.GET("/metrics", r.metrics.Handler())

	ctrl := r.controllers
	auth := r.authMiddleware.Authenticate()
	optionalAuth := r.authMiddleware.OptionalAuthenticate()
	// Catalog writes: places, events, categories and the hierarchy.
	admin := r.authMiddleware.RequireRole(model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", ctrl.Auth.Register)
			authGroup.POST("/login", ctrl.Auth.Login)
			authGroup.POST("/logout", auth, ctrl.Auth.Logout)
			authGroup.GET("/me", auth, ctrl.Auth.GetMe)
		}
		v1.GET("/users/:id/stats", ctrl.Auth.GetStats)

		categories := v1.Group("/categories")
		{
			categories.GET("", ctrl.Category.ListCategories)
			categories.GET("/:id", ctrl.Category.GetCategory)
			categories.POST("", auth, admin, ctrl.Category.CreateCategory)
		}

		v1.GET("/provinces", ctrl.Geo.ListProvinces)
		v1.GET("/provinces/:id/cantons", ctrl.Geo.ListCantons)
		v1.DELETE("/provinces/:id", auth, admin, ctrl.Geo.DeleteProvince)
		v1.GET("/cantons/:id/parishes", ctrl.Geo.ListParishes)

		ajax := v1.Group("/ajax")
		{
			ajax.GET("/load-cantones", ctrl.Geo.LoadCantones)
			ajax.GET("/load-parroquias", ctrl.Geo.LoadParroquias)
		}

		places := v1.Group("/places")
		{
			places.GET("", ctrl.Place.ListPlaces)
			places.GET("/:id", ctrl.Place.GetPlace)
			places.GET("/:id/classification", ctrl.Place.GetClassification)
			places.GET("/:id/rating", ctrl.Place.GetRating)
			places.POST("", auth, admin, ctrl.Place.CreatePlace)
			places.PUT("/:id", auth, admin, ctrl.Place.UpdatePlace)
			places.DELETE("/:id", auth, admin, ctrl.Place.DeletePlace)
		}

		events := v1.Group("/events")
		{
			events.GET("", ctrl.Event.ListEvents)
			events.GET("/:id", ctrl.Event.GetEvent)
			events.POST("", auth, admin, ctrl.Event.CreateEvent)
			events.PUT("/:id", auth, admin, ctrl.Event.UpdateEvent)
			events.DELETE("/:id", auth, admin, ctrl.Event.DeleteEvent)
		}

		routes := v1.Group("/routes")
		{
			// PRIVATE routes are only shown to their owner
			routes.GET("", optionalAuth, ctrl.Route.ListRoutes)
			routes.GET("/:id", optionalAuth, ctrl.Route.GetRoute)
			routes.GET("/:id/stops", optionalAuth, ctrl.Route.ListStops)
			routes.GET("/:id/path", optionalAuth, ctrl.Route.GetPath)
			routes.GET("/:id/total-time", optionalAuth, ctrl.Route.GetTotalTime)

			routes.POST("", auth, ctrl.Route.CreateRoute)
			routes.PUT("/:id", auth, ctrl.Route.UpdateRoute)
			routes.DELETE("/:id", auth, ctrl.Route.DeleteRoute)
			routes.PUT("/:id/categories", auth, ctrl.Route.SetCategories)
			routes.POST("/:id/stops", auth, ctrl.RouteStop.AddStop)
			routes.DELETE("/:id/stops/:place_id", auth, ctrl.RouteStop.RemoveStop)
		}

		stops := v1.Group("/route-stops")
		{
			stops.GET("", optionalAuth, ctrl.RouteStop.ListStops)
			stops.GET("/:id", optionalAuth, ctrl.RouteStop.GetStop)
			stops.PUT("/:id", auth, ctrl.RouteStop.UpdateStop)
		}

		saved := v1.Group("/saved-routes")
		saved.Use(auth)
		{
			saved.GET("", ctrl.SavedRoute.ListSavedRoutes)
			saved.POST("", ctrl.SavedRoute.SaveRoute)
			saved.DELETE("/:route_id", ctrl.SavedRoute.UnsaveRoute)
		}

		favorites := v1.Group("/favorites")
		favorites.Use(auth)
		{
			favorites.GET("", ctrl.Favorite.ListFavorites)
			favorites.POST("", ctrl.Favorite.AddFavorite)
			favorites.DELETE("/:id", ctrl.Favorite.RemoveFavorite)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", ctrl.Review.ListReviews)
			reviews.POST("", auth, ctrl.Review.CreateReview)
			reviews.DELETE("/:id", auth, ctrl.Review.DeleteReview)
		}

		upload := v1.Group("/upload")
		upload.Use(auth)
		{
			upload.POST("/cover", ctrl.Upload.PresignCover)
		}
	}

	return router, nil
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
