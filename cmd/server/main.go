package main

import (
	"log"

	"chatify/internal/api"
	"chatify/internal/config"
)

func main() {
	cfg := config.FromEnv()

	if err := api.Serve(cfg); err != nil {
		log.Fatal(err)
	}
}
