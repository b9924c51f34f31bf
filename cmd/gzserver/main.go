// Command gzserver runs the GZIP/DEFLATE decompressor as an HTTP service.
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/adilg123/gzdecomp/internal/api"
	"github.com/adilg123/gzdecomp/internal/config"
)

func main() {
	cfg := config.LoadServerConfig()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api.SetupRoutes(router)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("gzdecomp server listening on %s (env=%s)", addr, cfg.Environment)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
