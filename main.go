package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"shoe-advisor/server"
)

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func atoiDef(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func asBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func main() {
	fmt.Println("Starting Shoe Advisor Backend...")
	_ = godotenv.Load()

	cfg := server.Config{
		Port:         getenv("PORT", "7777"),
		DefaultDecks: atoiDef("SHOE_DECKS", 8),
		SimTrials:    atoiDef("SIM_TRIALS", 30000),
		SimWorkers:   atoiDef("SIM_WORKERS", 0),
		Debug:        asBool(os.Getenv("DEBUG")),
	}

	s := server.NewServer(cfg)
	if err := s.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
