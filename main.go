package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/maisonember/restaurant-site/config"
	"github.com/maisonember/restaurant-site/router"
	"github.com/maisonember/restaurant-site/store"
	"github.com/maisonember/restaurant-site/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load configuration: %v", err)
	}
	if len(cfg.AdminPasswordHash) == 0 {
		utils.InfoLogger.Println("Warning: ADMIN_PASSWORD not set, admin surface disabled")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	records := store.NewRecordStore(cfg.DataDir)
	content := store.NewContentStore(cfg.DataDir)

	r := router.SetupRouter(cfg, records, content)

	addr := cfg.Host + ":" + cfg.Port
	utils.InfoLogger.Printf("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
