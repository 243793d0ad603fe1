// cmd/server/main.go
package main

import (
	"os"

	"github.com/Annany2002/cafe-api/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		customLog.Errorf("cafe-api: %v", err)
		os.Exit(1)
	}
}
