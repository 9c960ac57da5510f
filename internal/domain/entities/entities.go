package entities

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// User represents a registered account with its favorites list.
//
// PasswordHash holds the bcrypt hash of the user's password. The legacy
// wire format carries it in the "senha" field, so the field serializes with
// omitempty and must be blanked by the service layer before a record leaves
// the API.
type User struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"nome" db:"nome"`
	Login        string   `json:"login" db:"login"`
	Email        string   `json:"email" db:"email"`
	PasswordHash string   `json:"senha,omitempty" db:"senha"`
	Admin        bool     `json:"admin" db:"admin"`
	Favorites    []string `json:"favorites"`
}

// Item represents a point of interest shown in the catalog, carousel and map.
type Item struct {
	ID             string   `json:"id" db:"id"`
	Name           string   `json:"nome" db:"nome"`
	Description    string   `json:"descricao" db:"descricao"`
	Address        string   `json:"endereco,omitempty" db:"endereco"`
	City           string   `json:"cidade,omitempty" db:"cidade"`
	State          string   `json:"estado,omitempty" db:"estado"`
	Image          string   `json:"imagem,omitempty" db:"imagem"`
	ExtraImages    []string `json:"imagensAdicionais,omitempty"`
	OpeningHours   string   `json:"horarioFuncionamento,omitempty" db:"horario_funcionamento"`
	TicketPrice    string   `json:"precoEntrada,omitempty" db:"preco_entrada"`
	BestSeason     string   `json:"melhorEpoca,omitempty" db:"melhor_epoca"`
	Climate        string   `json:"clima,omitempty" db:"clima"`
	Rating         float64  `json:"avaliacao,omitempty" db:"avaliacao"`
	RatingCount    int      `json:"numeroAvaliacoes,omitempty" db:"numero_avaliacoes"`
	Tips           []string `json:"dicas,omitempty"`
	Infrastructure []string `json:"infraestrutura,omitempty"`
	Attractions    []string `json:"atracoes,omitempty"`
	Featured       bool     `json:"destaque" db:"destaque"`
	Latitude       *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64 `json:"longitude,omitempty" db:"longitude"`
}

// Business logic methods for User

// HasFavorite reports whether the item id is present in the favorites list.
func (u *User) HasFavorite(itemID string) bool {
	for _, id := range u.Favorites {
		if id == itemID {
			return true
		}
	}
	return false
}

// Sanitized returns a copy of the user safe to serialize in API responses.
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordHash = ""
	if clone.Favorites == nil {
		clone.Favorites = []string{}
	}
	return &clone
}

// Business logic methods for Item

// HasCoordinates reports whether the item can be placed on the map.
func (i *Item) HasCoordinates() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// MatchesSearch reports whether the item matches a free-text search term
// over its name and description.
func (i *Item) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(i.Name), term) ||
		strings.Contains(strings.ToLower(i.Description), term)
}
