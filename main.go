package main

import (
	"log"

	"github.com/Priyam-804/WearNest/config"
	"github.com/Priyam-804/WearNest/controllers"
	"github.com/Priyam-804/WearNest/routes"
	"github.com/Priyam-804/WearNest/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	config.InitDB()
	utils.LogInfo("Database connected and migrated")

	if err := controllers.CreateSampleAdmin(config.DB); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	utils.InitNotifier()
	defer utils.CloseNotifier()

	r := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = utils.DefaultPort
	}
	utils.LogInfo("%s listening on :%s", utils.AppName, port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
