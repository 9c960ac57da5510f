package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/roteiro/core/cmd/api/commands"
)

// @title Roteiro API
// @version 1.0
// @description Catalog of Brazilian points of interest with user accounts and favorites

// @contact.name Roteiro Support
// @contact.url https://github.com/roteiro/core

// @license.name MIT
// @license.url https://github.com/roteiro/core/blob/main/LICENSE

// @host localhost:3000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "roteiro",
		Short: "Roteiro catalog server and client",
		Long:  `Roteiro serves a catalog of points of interest with user accounts and per-user favorites, and ships client commands to manage a session and its favorites from the terminal.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewFavoritesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
