package commands

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/roteiro/core/internal/adapters/repository"
	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/config"
)

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a sample catalog and admin account to the data file",
		Long:  "Populate the flat-file store with sample points of interest and an admin account. Refuses to overwrite an existing document unless --force is given.",
		Run: func(cmd *cobra.Command, args []string) {
			force, _ := cmd.Flags().GetBool("force")
			adminPassword, _ := cmd.Flags().GetString("admin-password")
			runSeed(force, adminPassword)
		},
	}

	seedCmd.Flags().Bool("force", false, "Overwrite existing data")
	seedCmd.Flags().String("admin-password", "admin", "Password for the seeded admin account")
	return seedCmd
}

func runSeed(force bool, adminPassword string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Storage.Engine != config.EngineFile {
		log.Fatalf("Seeding requires the file storage engine (current: %s)", cfg.Storage.Engine)
	}

	store := repository.NewStore(cfg.Storage.FilePath)

	err = store.Update(func(doc *repository.Document) error {
		if !force && (len(doc.Users) > 0 || len(doc.Items) > 0) {
			return fmt.Errorf("document %s is not empty (use --force to overwrite)", store.Path())
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		doc.Users = []*entities.User{
			{
				ID:           uuid.New().String(),
				Name:         "Administrador",
				Login:        "admin",
				Email:        "admin@roteiro.com.br",
				PasswordHash: string(hashed),
				Admin:        true,
				Favorites:    []string{},
			},
		}
		doc.Items = sampleItems()
		return nil
	})
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	fmt.Printf("Seeded %s with sample data\n", store.Path())
	fmt.Println("Admin login: admin")
}

func coords(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

func sampleItems() []*entities.Item {
	cristoLat, cristoLon := coords(-22.9519, -43.2105)
	paoLat, paoLon := coords(-22.9486, -43.1566)
	iguacuLat, iguacuLon := coords(-25.6953, -54.4367)
	lencoisLat, lencoisLon := coords(-2.4856, -43.1281)

	return []*entities.Item{
		{
			ID:           uuid.New().String(),
			Name:         "Cristo Redentor",
			Description:  "Estátua art déco de Jesus Cristo no topo do Corcovado, com vista panorâmica do Rio de Janeiro.",
			Address:      "Parque Nacional da Tijuca",
			City:         "Rio de Janeiro",
			State:        "RJ",
			OpeningHours: "08:00 - 19:00",
			TicketPrice:  "R$ 97,00",
			BestSeason:   "Abril a junho",
			Climate:      "Tropical",
			Rating:       4.8,
			RatingCount:  125430,
			Tips:         []string{"Chegue cedo para evitar filas", "Dias claros têm a melhor vista"},
			Attractions:  []string{"Mirante", "Capela Nossa Senhora Aparecida"},
			Featured:     true,
			Latitude:     cristoLat,
			Longitude:    cristoLon,
		},
		{
			ID:           uuid.New().String(),
			Name:         "Pão de Açúcar",
			Description:  "Morro na entrada da Baía de Guanabara, acessível por bondinho, com vista da cidade e do mar.",
			Address:      "Av. Pasteur, 520 - Urca",
			City:         "Rio de Janeiro",
			State:        "RJ",
			OpeningHours: "08:00 - 21:00",
			TicketPrice:  "R$ 120,00",
			BestSeason:   "Maio a outubro",
			Climate:      "Tropical",
			Rating:       4.7,
			RatingCount:  98210,
			Tips:         []string{"O pôr do sol visto do alto é imperdível"},
			Attractions:  []string{"Bondinho", "Trilha da Urca"},
			Featured:     true,
			Latitude:     paoLat,
			Longitude:    paoLon,
		},
		{
			ID:             uuid.New().String(),
			Name:           "Cataratas do Iguaçu",
			Description:    "Conjunto de cerca de 275 quedas d'água na fronteira entre Brasil e Argentina.",
			City:           "Foz do Iguaçu",
			State:          "PR",
			OpeningHours:   "09:00 - 17:00",
			TicketPrice:    "R$ 105,00",
			BestSeason:     "Agosto a setembro",
			Climate:        "Subtropical",
			Rating:         4.9,
			RatingCount:    87650,
			Tips:           []string{"Leve capa de chuva para a passarela"},
			Infrastructure: []string{"Trem interno", "Passarelas", "Restaurantes"},
			Featured:       true,
			Latitude:       iguacuLat,
			Longitude:      iguacuLon,
		},
		{
			ID:          uuid.New().String(),
			Name:        "Lençóis Maranhenses",
			Description: "Parque nacional de dunas brancas e lagoas de água doce formadas pela chuva.",
			City:        "Barreirinhas",
			State:       "MA",
			BestSeason:  "Junho a setembro",
			Climate:     "Tropical",
			Rating:      4.9,
			RatingCount: 45320,
			Tips:        []string{"As lagoas enchem entre junho e setembro"},
			Attractions: []string{"Lagoa Azul", "Lagoa Bonita"},
			Featured:    false,
			Latitude:    lencoisLat,
			Longitude:   lencoisLon,
		},
	}
}
