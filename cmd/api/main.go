package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"postkutsche/internal/config"
	"postkutsche/internal/database"
	"postkutsche/internal/domain/archive"
	"postkutsche/internal/domain/dispatch"
	"postkutsche/internal/domain/letter"
	"postkutsche/internal/domain/settings"
	"postkutsche/internal/events"
	"postkutsche/internal/middleware"
	"postkutsche/internal/notify"
	"postkutsche/internal/ob24"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", envOrDefault("POSTKUTSCHE_CONFIG", config.DefaultPath()), "path to the TOML config")
	addr := flag.String("addr", envOrDefault("POSTKUTSCHE_ADDR", "127.0.0.1:4280"), "listen address for the UI shell")
	flag.Parse()

	store, err := config.NewStore(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(store.Snapshot().Cache.Database)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	var notifier notify.Notifier
	var opener notify.Opener
	if os.Getenv("POSTKUTSCHE_HEADLESS") != "" {
		l := notify.NewLog()
		notifier, opener = l, l
	} else {
		d := notify.NewDesktop()
		notifier, opener = d, d
	}

	letterRepo := letter.NewRepository(db)
	archiveRepo := archive.NewRepository(db)

	letterService := letter.NewService(letterRepo)
	hub := events.NewHub()
	mailClient := ob24.New(os.Getenv("ONLINEBRIEF24_BASE_URL"))

	dispatchService := dispatch.NewService(
		letterService,
		letterRepo,
		archiveRepo,
		mailClient,
		notifier,
		hub,
		store,
	)

	letterHandler := letter.NewHandler(letterService, store)
	archiveHandler := archive.NewHandler(archiveRepo, store, opener)
	dispatchHandler := dispatch.NewHandler(dispatchService)
	settingsHandler := settings.NewHandler(store, opener)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())

	r.GET("/ws", hub.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		letter.RegisterRoutes(v1, letterHandler)
		archive.RegisterRoutes(v1, archiveHandler)
		dispatch.RegisterRoutes(v1, dispatchHandler)
		settings.RegisterRoutes(v1, settingsHandler)
	}

	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
