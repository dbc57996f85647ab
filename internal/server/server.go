package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/avinashk/crickstand/config"
	"github.com/avinashk/crickstand/internal/booking"
	"github.com/avinashk/crickstand/internal/handlers"
	"github.com/avinashk/crickstand/internal/inventory"
	"github.com/avinashk/crickstand/internal/middleware"
	"github.com/avinashk/crickstand/internal/models"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	redisClient := config.InitRedis(cfg)

	r := gin.Default()

	setupRoutes(r, db, redisClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, redisClient *redis.Client) {
	r.Use(middleware.DatabaseMiddleware(db))

	store := inventory.NewGormStore(db, inventory.NewCache(redisClient))
	repo := booking.NewGormRepository(db)
	coordinator := booking.NewCoordinator(booking.NewGormCatalog(db), store, repo)
	lifecycle := booking.NewLifecycle(repo, store)
	gateway := booking.NewApprovalGateway(booking.NewGormRoleChecker(db), lifecycle)
	bookingHandler := handlers.NewBookingHandler(coordinator, lifecycle, gateway, repo)

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.GET("/teams", handlers.ListTeams)
		public.GET("/stadiums", handlers.ListStadiums)

		matchPublic := public.Group("/matches")
		{
			matchPublic.GET("", handlers.ListMatches)
			matchPublic.GET("/:id", handlers.GetMatch)
			matchPublic.GET("/:id/categories", handlers.ListSeatCategories)
		}

		public.GET("/categories/:id/availability", handlers.GetAvailability(store))

		bookingPublic := public.Group("/bookings")
		{
			bookingPublic.POST("", bookingHandler.CreateBooking)
			bookingPublic.GET("/:id", bookingHandler.GetBooking)
			bookingPublic.POST("/:id/payment-reference", bookingHandler.SubmitPaymentReference)
			bookingPublic.POST("/:id/cancel", bookingHandler.CancelBooking)
			bookingPublic.GET("/:id/qr", bookingHandler.BookingQR)
		}
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware())
	{
		catalog := admin.Group("")
		catalog.Use(middleware.RequireRole(models.RoleAdmin))
		{
			catalog.POST("/teams", handlers.CreateTeam)
			catalog.POST("/stadiums", handlers.CreateStadium)
			catalog.POST("/matches", handlers.CreateMatch)
			catalog.PUT("/matches/:id", handlers.UpdateMatch)
			catalog.POST("/matches/:id/categories", handlers.CreateSeatCategory)
			catalog.GET("/bookings", bookingHandler.ListPendingBookings)
		}

		// Confirm and reject go through the approval gateway, which does
		// its own role lookup against the database rather than trusting
		// the token claim alone.
		admin.POST("/bookings/:id/confirm", bookingHandler.ConfirmBooking)
		admin.POST("/bookings/:id/reject", bookingHandler.RejectBooking)
	}
}
