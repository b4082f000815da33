package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"skillforge/ai"
	config "skillforge/configs"
	"skillforge/database"
	"skillforge/handlers"
	"skillforge/jobs"
	"skillforge/middleware"
	"skillforge/notifications"
	"skillforge/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("🔥 Invalid configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	log.Println("✅ Database connected and migrated")

	var mail notifications.Sender
	if brevo := notifications.NewBrevoService(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName); brevo != nil {
		mail = brevo
		log.Println("✅ Email service initialized")
	} else {
		log.Println("⚠️ Email service not configured, notifications will be skipped")
	}

	keywords := &ai.KeywordService{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("🔥 Failed to initialize Gemini client: %v", err)
		}
		defer gemini.Close()
		keywords.Gen = gemini
		log.Println("✅ Keyword suggestion service initialized")
	} else {
		log.Println("⚠️ GEMINI_API_KEY not set, keyword suggestions disabled")
	}

	authHandler := &handlers.AuthHandler{DB: db, Mail: mail, JWTSecret: cfg.JWTSecret}
	skillHandler := &handlers.SkillHandler{DB: db}
	reviewHandler := &handlers.ReviewHandler{DB: db}
	bookingHandler := &handlers.BookingHandler{DB: db, Mail: mail}
	aiHandler := &handlers.AIHandler{Keywords: keywords}

	app := fiber.New(fiber.Config{
		AppName:       "SkillForge",
		CaseSensitive: true,
		StrictRouting: false,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{"error": "Something went wrong"})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	auth := middleware.Protected(cfg.JWTSecret)
	routes.UserRoutes(app, auth, authHandler)
	routes.SkillRoutes(app, auth, skillHandler, reviewHandler)
	routes.BookingRoutes(app, auth, bookingHandler)
	routes.AIRoutes(app, auth, aiHandler)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	reminders := &jobs.ReminderJob{DB: db, Mail: mail}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("*/5 * * * *", reminders.SendSessionReminders); err != nil {
		log.Fatalf("🔥 Failed to schedule reminder job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Println("✅ Session reminder job scheduled")

	log.Printf("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
