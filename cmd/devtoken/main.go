// Command devtoken mints a short-lived bearer token for local testing.
//
//	go run ./cmd/devtoken -user alice -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"fieldlog/config"
	"fieldlog/middleware"
)

func main() {
	userID := flag.String("user", "dev", "subject the token is issued for")
	ttl := flag.Duration("ttl", 24*time.Hour, "token validity")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	token, err := middleware.MintToken(*userID, []byte(cfg.Auth.Secret), *ttl)
	if err != nil {
		log.Fatal("failed to mint token: ", err)
	}

	fmt.Println(token)
}
