package main

import (
	"github.com/joho/godotenv"

	"talent/internal/app/server"
)

func main() {
	_ = godotenv.Load()
	server.Run()
}
