package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"marketplace_backend/config"
	"marketplace_backend/handlers"
	"marketplace_backend/internal/store"
	"marketplace_backend/internal/translate"
	"marketplace_backend/internal/ws"
	"marketplace_backend/middleware"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName:      "Marketplace Backend",
		ServerHeader: "Marketplace Backend Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app, cfg)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	setupRoutes(app, db, hub, cfg)
	middleware.SetupErrorHandler(app)

	log.Printf("Server starting on host %s in port %s mode", cfg.Host, cfg.AppPort)

	if err := app.Listen(cfg.Host + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupRoutes(app *fiber.App, db *gorm.DB, hub *ws.Hub, cfg *config.Config) {
	stores := store.New(db)
	translator := translate.New(cfg.DeepLAPIKey, cfg.DeepLEndpoint)

	authHandler := handlers.NewAuthHandler(stores.Users)
	userHandler := handlers.NewUserHandler(stores.Users, stores.Products, stores.Delivery)
	productHandler := handlers.NewProductHandler(stores.Products)
	moderatorHandler := handlers.NewModeratorHandler(stores.Users, stores.Products, stores.Delivery)
	reportHandler := handlers.NewReportHandler(stores.Reports)
	deliveryHandler := handlers.NewDeliveryHandler(stores.Delivery)
	chatHandler := handlers.NewChatHandler(hub, stores.Chat, stores.Users, stores.Products, translator)

	api := app.Group("/api")

	// Auth & users
	users := api.Group("/users")
	users.Post("/signup", authHandler.Signup)
	users.Post("/login", authHandler.Login)
	users.Post("/token/refresh", authHandler.RefreshToken)

	auth := middleware.AuthMiddleware()
	users.Get("/edit/:userID", auth, userHandler.GetProfile)
	users.Put("/edit/:userID", auth, userHandler.UpdateProfile)
	users.Post("/favourites", auth, userHandler.AddFavourite)
	users.Get("/favourites/:userID", auth, userHandler.GetFavourites)
	users.Delete("/favourites/:userID/:productID", auth, userHandler.RemoveFavourite)
	users.Get("/orders/:requestID", auth, userHandler.OrderDetails)
	users.Get("/my-listings/:userID", auth, userHandler.MyListings)
	users.Get("/:userID", auth, userHandler.PreviousDeliveries)

	// Products & categories
	products := api.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Get("/categories", productHandler.GetCategories)
	products.Post("/", auth, productHandler.CreateProduct)
	products.Get("/:productID", productHandler.GetProduct)
	products.Put("/:productID", auth, productHandler.UpdateProduct)
	products.Delete("/:productID", auth, productHandler.DeleteProduct)

	// Moderation
	moderator := api.Group("/moderator", auth, middleware.RequireModerator())
	moderator.Get("/pending-listings", moderatorHandler.GetPendingListings)
	moderator.Post("/approve-listings/:productID", moderatorHandler.ApproveListing)
	moderator.Post("/reject-listings/:productID", moderatorHandler.RejectListing)
	moderator.Get("/pending-agents", moderatorHandler.GetPendingAgents)
	moderator.Get("/pending-agents/:agentID", moderatorHandler.GetPendingAgent)
	moderator.Post("/approve-agents/:agentID", moderatorHandler.ApproveAgent)
	moderator.Post("/reject-agents/:agentID", moderatorHandler.RejectAgent)
	moderator.Get("/:moderatorID", moderatorHandler.GetModerator)
	moderator.Put("/:moderatorID", moderatorHandler.UpdateModerator)

	// Reports
	reports := api.Group("/reports", auth)
	reports.Get("/", reportHandler.GetPendingReports)
	reports.Post("/:productID", reportHandler.CreateReport)
	reports.Post("/:reportID/delete", middleware.RequireModerator(), reportHandler.ResolveDelete)
	reports.Post("/:reportID/keep", middleware.RequireModerator(), reportHandler.ResolveKeep)

	// Delivery agents
	agents := api.Group("/delivery-agents")
	agents.Post("/signup", deliveryHandler.Signup)
	agents.Post("/login", deliveryHandler.Login)
	agents.Post("/refresh-token", deliveryHandler.RefreshToken)

	agentAuth := middleware.AgentAuthMiddleware(db)
	agents.Post("/create-delivery-request", auth, deliveryHandler.CreateRequest)
	agents.Post("/accept-request/:requestID/:agentID", agentAuth, deliveryHandler.AcceptRequest)
	agents.Post("/update-status/:requestID", agentAuth, deliveryHandler.UpdateStatus)
	agents.Get("/pending-requests/:agentID", agentAuth, deliveryHandler.GetPendingRequests)
	agents.Get("/accepted-deliveries/:agentID", agentAuth, deliveryHandler.GetAcceptedDeliveries)
	agents.Get("/previous-deliveries/:agentID", agentAuth, deliveryHandler.GetPreviousDeliveries)
	agents.Get("/accepted-delivery-details/:requestID", agentAuth, deliveryHandler.GetDeliveryDetails)

	// Chat
	chats := api.Group("/chats", auth)
	chats.Post("/room", chatHandler.CreateRoom)
	chats.Get("/rooms/:userID", chatHandler.GetRooms)
	chats.Get("/messages/:roomName", chatHandler.GetMessages)
	chats.Get("/count/:userID", chatHandler.CountRooms)

	// WebSocket endpoint; token is optional, anonymous without it
	app.Get("/ws/chat/:roomName", chatHandler.WebSocketUpgradeMiddleware, chatHandler.Handler())
}
