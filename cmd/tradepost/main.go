package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"tradepost/internal/config"
	"tradepost/internal/http/handlers"
	"tradepost/internal/ledger"
	applog "tradepost/internal/log"
	"tradepost/internal/repos"
	"tradepost/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Ledger wiring: accounts back the value transfer, the journal
	// observes every committed event.
	accountRepo := repos.NewAccountRepo(db)
	treasury := services.NewTreasuryService(accountRepo)
	lgr := ledger.New(treasury)
	journal := services.NewJournalWriter(repos.NewJournalRepo(db))
	lgr.Subscribe(journal.Record)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, lgr)

	// Public browse pages
	app.Get("/", deps.BrowseHandler.Home)
	app.Get("/item/:id", deps.BrowseHandler.Detail)

	// API
	api := app.Group("/api/v1")

	api.Post("/register", deps.AuthHandler.Register)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, retry later"})
		},
	}), deps.AuthHandler.Login)
	api.Get("/me", handlers.RequireAuth(deps.Auth), deps.AuthHandler.Me)

	// Read side: open to anyone
	api.Get("/items", deps.ItemHandler.Page)
	api.Get("/items/count", deps.ItemHandler.Count)
	api.Get("/items/active", deps.ItemHandler.Active)
	api.Get("/items/:id", deps.ItemHandler.Get)
	api.Get("/sellers/:id/items", deps.ItemHandler.SellerItems)
	api.Get("/journal", deps.ItemHandler.JournalRecent)

	// Mutations: authenticated principals only
	authed := api.Group("", handlers.RequireAuth(deps.Auth))
	authed.Post("/items", deps.ItemHandler.Create)
	authed.Put("/items/:id", deps.ItemHandler.Update)
	authed.Delete("/items/:id", deps.ItemHandler.Remove)
	authed.Post("/items/:id/purchase", deps.ItemHandler.Purchase)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
