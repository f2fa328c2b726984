// Command huffd serves the huffman codec over HTTP.
package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/jba/huffpack/internal/config"
	"github.com/jba/huffpack/internal/handler"
	"github.com/jba/huffpack/internal/logger"
	"github.com/jba/huffpack/internal/router"
	"github.com/jba/huffpack/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logg := logger.New(os.Stderr)

	svc, err := service.NewCodecService(cfg.TreeCacheSize, cfg.MaxBodyBytes, logg)
	if err != nil {
		log.Fatal(err)
	}
	codecH := handler.NewCodecHandler(svc, cfg.MaxBodyBytes, logg)

	r := gin.Default()
	router.Register(r, router.Dependencies{
		CodecHandler: codecH,
	})

	addr := ":" + cfg.Port
	logg.Infof("starting server at %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
