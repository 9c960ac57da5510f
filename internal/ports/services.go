package ports

import "github.com/roteiro/core/internal/domain/entities"

// RegisterRequest carries the fields of a new account registration.
type RegisterRequest struct {
	Name     string `json:"nome" validate:"required"`
	Login    string `json:"login" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=4"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

// CreateUserRequest carries the fields of a direct user creation
// (POST /usuarios, legacy wire format).
type CreateUserRequest struct {
	Name      string   `json:"nome" validate:"required"`
	Login     string   `json:"login" validate:"required,min=3"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"senha" validate:"required,min=4"`
	Admin     bool     `json:"admin"`
	Favorites []string `json:"favorites"`
}

// UpdateUserRequest carries the fields of a shallow user patch
// (PATCH /usuarios/:id). Absent fields are left untouched.
type UpdateUserRequest struct {
	Name      *string   `json:"nome"`
	Login     *string   `json:"login"`
	Email     *string   `json:"email" validate:"omitempty,email"`
	Password  *string   `json:"senha" validate:"omitempty,min=4"`
	Admin     *bool     `json:"admin"`
	Favorites *[]string `json:"favorites"`
}

// ItemRequest carries the fields of an item create or update (admin only).
type ItemRequest struct {
	Name           string   `json:"nome" validate:"required"`
	Description    string   `json:"descricao" validate:"required"`
	Address        string   `json:"endereco"`
	City           string   `json:"cidade"`
	State          string   `json:"estado"`
	Image          string   `json:"imagem"`
	ExtraImages    []string `json:"imagensAdicionais"`
	OpeningHours   string   `json:"horarioFuncionamento"`
	TicketPrice    string   `json:"precoEntrada"`
	BestSeason     string   `json:"melhorEpoca"`
	Climate        string   `json:"clima"`
	Rating         float64  `json:"avaliacao" validate:"gte=0,lte=5"`
	RatingCount    int      `json:"numeroAvaliacoes" validate:"gte=0"`
	Tips           []string `json:"dicas"`
	Infrastructure []string `json:"infraestrutura"`
	Attractions    []string `json:"atracoes"`
	Featured       bool     `json:"destaque"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// ToItem builds the catalog entity for the request.
func (r ItemRequest) ToItem(id string) *entities.Item {
	return &entities.Item{
		ID:             id,
		Name:           r.Name,
		Description:    r.Description,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		Image:          r.Image,
		ExtraImages:    r.ExtraImages,
		OpeningHours:   r.OpeningHours,
		TicketPrice:    r.TicketPrice,
		BestSeason:     r.BestSeason,
		Climate:        r.Climate,
		Rating:         r.Rating,
		RatingCount:    r.RatingCount,
		Tips:           r.Tips,
		Infrastructure: r.Infrastructure,
		Attractions:    r.Attractions,
		Featured:       r.Featured,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
	}
}
