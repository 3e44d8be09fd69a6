package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/df07/go-raycaster/pkg/config"
	"github.com/df07/go-raycaster/web/server"
)

const defaultPort = 8080

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Printf("Error loading environment: %v", err)
		os.Exit(1)
	}

	port := flag.Int("port", envPort(), "Port to serve on (or "+config.EnvPrefix+"PORT)")
	flag.Parse()

	webServer := server.NewServer(*port)

	log.Printf("Ray Caster Preview Server")
	log.Printf("  PNG:     http://localhost:%d/api/render?scene=default", *port)
	log.Printf("  Raw:     http://localhost:%d/api/frame?format=rgba8", *port)
	log.Printf("  Inspect: http://localhost:%d/api/inspect?x=384&y=304", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

func envPort() int {
	if value, ok := os.LookupEnv(config.EnvPrefix + "PORT"); ok {
		if port, err := strconv.Atoi(value); err == nil && port > 0 {
			return port
		}
		log.Printf("Ignoring invalid %sPORT=%q", config.EnvPrefix, value)
	}
	return defaultPort
}
