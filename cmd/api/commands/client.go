package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/roteiro/core/internal/client"
	"github.com/roteiro/core/internal/infrastructure/config"
	"github.com/roteiro/core/internal/infrastructure/logger"
)

// clientContext bundles what every client command needs.
type clientContext struct {
	api       *client.Client
	session   *client.Session
	favorites *client.Favorites
}

// newClientContext loads the configuration and session for client commands.
// The --server flag overrides the configured server URL.
func newClientContext(cmd *cobra.Command) *clientContext {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	serverURL := cfg.Client.ServerURL
	if flagURL, _ := cmd.Flags().GetString("server"); flagURL != "" {
		serverURL = flagURL
	}

	api := client.New(serverURL)
	session, err := client.NewSession(client.NewFileSessionStore(cfg.Client.SessionFile))
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	return &clientContext{
		api:       api,
		session:   session,
		favorites: client.NewFavorites(api, session, logger.NewNop()),
	}
}

func addServerFlag(cmd *cobra.Command) {
	cmd.Flags().String("server", "", "Server URL (overrides configuration)")
}

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Run: func(cmd *cobra.Command, args []string) {
			login, _ := cmd.Flags().GetString("login")
			password, _ := cmd.Flags().GetString("password")
			if login == "" || password == "" {
				log.Fatal("Login and password are required")
			}

			cc := newClientContext(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			resp, err := cc.api.Login(ctx, login, password)
			if err != nil {
				log.Fatalf("Login failed: %v", err)
			}
			if err := cc.session.Set(resp.User); err != nil {
				log.Fatalf("Failed to store session: %v", err)
			}

			fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Login)
		},
	}

	loginCmd.Flags().String("login", "", "Login (required)")
	loginCmd.Flags().String("password", "", "Password (required)")
	addServerFlag(loginCmd)
	return loginCmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			cc := newClientContext(cmd)
			if err := cc.session.Clear(); err != nil {
				log.Fatalf("Failed to clear session: %v", err)
			}
			fmt.Println("Logged out")
		},
	}
	addServerFlag(logoutCmd)
	return logoutCmd
}

// NewFavoritesCommand creates the favoritos command with subcommands
func NewFavoritesCommand() *cobra.Command {
	favCmd := &cobra.Command{
		Use:   "favoritos",
		Short: "Manage the favorites of the logged-in user",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites, pruning entries no longer in the catalog",
		Run: func(cmd *cobra.Command, args []string) {
			cc := newClientContext(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			items, err := cc.favorites.Load(ctx)
			if err != nil {
				if errors.Is(err, client.ErrNotLoggedIn) {
					log.Fatal("Not logged in; run the login command first")
				}
				log.Fatalf("Failed to load favorites: %v", err)
			}

			if len(items) == 0 {
				fmt.Println("No favorites yet")
				return
			}
			for _, item := range items {
				fmt.Printf("%s  %s\n", item.ID, item.Name)
			}
		},
	}
	addServerFlag(listCmd)

	toggleCmd := &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Toggle an item in the favorites list",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cc := newClientContext(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			favorited, err := cc.favorites.Toggle(ctx, args[0])
			if err != nil {
				if errors.Is(err, client.ErrNotLoggedIn) {
					log.Fatal("Not logged in; run the login command first")
				}
				log.Fatalf("Failed to toggle favorite: %v", err)
			}

			if favorited {
				fmt.Printf("Added %s to favorites\n", args[0])
			} else {
				fmt.Printf("Removed %s from favorites\n", args[0])
			}
		},
	}
	addServerFlag(toggleCmd)

	removeCmd := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from the favorites list",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cc := newClientContext(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := cc.favorites.Remove(ctx, args[0]); err != nil {
				if errors.Is(err, client.ErrNotLoggedIn) {
					log.Fatal("Not logged in; run the login command first")
				}
				log.Fatalf("Failed to remove favorite: %v", err)
			}
			fmt.Printf("Removed %s from favorites\n", args[0])
		},
	}
	addServerFlag(removeCmd)

	favCmd.AddCommand(listCmd, toggleCmd, removeCmd)
	return favCmd
}
