package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/card-statement-parser/internal/api"
	"github.com/insightdelivered/card-statement-parser/internal/config"
	"github.com/insightdelivered/card-statement-parser/internal/store"
)

func main() {
	cfg := config.Load()
	cfg.ConfigureLogging()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}
	defer st.Close()

	app := fiber.New(fiber.Config{
		AppName:   "card-statement-parser",
		BodyLimit: int(cfg.MaxFileSizeBytes()) + (1 << 20),
	})
	app.Use(recover.New())
	app.Use(cors.New())

	h := &api.Handler{Store: st, Cfg: cfg}
	h.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logrus.Infof("starting server on %s", addr)
	if err := app.Listen(addr); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}
