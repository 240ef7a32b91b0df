package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain loads .env if available so local runs see the same settings as the binary
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}
