package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/roteiro/core/internal/adapters/repository"
	pgrepo "github.com/roteiro/core/internal/adapters/repository/postgres"
	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/config"
	"github.com/roteiro/core/internal/infrastructure/database"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/infrastructure/server"
	"github.com/roteiro/core/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Roteiro API server",
		Long:  "Start the Roteiro API server with the configured storage engine and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage postgres migrations (up, down, version). Requires the postgres storage engine.",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and manage users directly against the configured storage",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			login, _ := cmd.Flags().GetString("login")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			admin, _ := cmd.Flags().GetBool("admin")

			if login == "" || password == "" {
				log.Fatal("Login and password are required")
			}
			if name == "" {
				name = login
			}

			createUser(name, login, email, password, admin)
		},
	}

	createUserCmd.Flags().String("name", "", "Display name (defaults to login)")
	createUserCmd.Flags().String("login", "", "Login (required)")
	createUserCmd.Flags().String("email", "", "Email address")
	createUserCmd.Flags().String("password", "", "Password (required)")
	createUserCmd.Flags().Bool("admin", false, "Grant catalog administration rights")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Roteiro version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Roteiro Core v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Info("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Shutdown failed", "error", err)
	}
}

// newMigrator builds a migrate instance; only the postgres engine has
// migrations to run.
func newMigrator() (*migrate.Migrate, *database.DB) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Storage.Engine != config.EnginePostgres {
		log.Fatalf("Migrations require the postgres storage engine (current: %s)", cfg.Storage.Engine)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := migratepg.WithInstance(db.DB.DB, &migratepg.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}
	return m, db
}

func runMigration(direction string) {
	m, db := newMigrator()
	defer db.Close()

	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}
	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m, db := newMigrator()
	defer db.Close()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

// openUserRepository builds a user repository for the configured engine.
func openUserRepository(cfg *config.Config) (ports.UserRepository, func()) {
	if cfg.Storage.Engine == config.EnginePostgres {
		db, err := database.New(cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		return pgrepo.NewUserRepository(db), func() { db.Close() }
	}
	store := repository.NewStore(cfg.Storage.FilePath)
	return repository.NewUserRepository(store), func() {}
}

func createUser(name, login, email, password string, admin bool) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	userRepo, closeRepo := openUserRepository(cfg)
	defer closeRepo()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &entities.User{
		ID:           uuid.New().String(),
		Name:         name,
		Login:        login,
		Email:        email,
		PasswordHash: string(hashed),
		Admin:        admin,
		Favorites:    []string{},
	}

	created, err := userRepo.Create(context.Background(), user)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("  ID: %s\n", created.ID)
	fmt.Printf("  Login: %s\n", created.Login)
	fmt.Printf("  Name: %s\n", created.Name)
	fmt.Printf("  Admin: %t\n", created.Admin)
}
