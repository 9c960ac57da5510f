package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/database"
	"github.com/roteiro/core/internal/ports"
)

// ItemRepositoryImpl implements ports.ItemRepository on postgres.
type ItemRepositoryImpl struct {
	db *database.DB
}

// NewItemRepository creates a new postgres item repository
func NewItemRepository(db *database.DB) ports.ItemRepository {
	return &ItemRepositoryImpl{db: db}
}

type itemRow struct {
	ID             string          `db:"id"`
	Nome           string          `db:"nome"`
	Descricao      string          `db:"descricao"`
	Endereco       string          `db:"endereco"`
	Cidade         string          `db:"cidade"`
	Estado         string          `db:"estado"`
	Imagem         string          `db:"imagem"`
	ExtraImages    pq.StringArray  `db:"imagens_adicionais"`
	Horario        string          `db:"horario_funcionamento"`
	Preco          string          `db:"preco_entrada"`
	MelhorEpoca    string          `db:"melhor_epoca"`
	Clima          string          `db:"clima"`
	Avaliacao      float64         `db:"avaliacao"`
	NumAvaliacoes  int             `db:"numero_avaliacoes"`
	Dicas          pq.StringArray  `db:"dicas"`
	Infraestrutura pq.StringArray  `db:"infraestrutura"`
	Atracoes       pq.StringArray  `db:"atracoes"`
	Destaque       bool            `db:"destaque"`
	Latitude       sql.NullFloat64 `db:"latitude"`
	Longitude      sql.NullFloat64 `db:"longitude"`
}

func (r itemRow) toEntity() *entities.Item {
	item := &entities.Item{
		ID:             r.ID,
		Name:           r.Nome,
		Description:    r.Descricao,
		Address:        r.Endereco,
		City:           r.Cidade,
		State:          r.Estado,
		Image:          r.Imagem,
		ExtraImages:    r.ExtraImages,
		OpeningHours:   r.Horario,
		TicketPrice:    r.Preco,
		BestSeason:     r.MelhorEpoca,
		Climate:        r.Clima,
		Rating:         r.Avaliacao,
		RatingCount:    r.NumAvaliacoes,
		Tips:           r.Dicas,
		Infrastructure: r.Infraestrutura,
		Attractions:    r.Atracoes,
		Featured:       r.Destaque,
	}
	if r.Latitude.Valid {
		lat := r.Latitude.Float64
		item.Latitude = &lat
	}
	if r.Longitude.Valid {
		lon := r.Longitude.Float64
		item.Longitude = &lon
	}
	return item
}

func itemArgs(item *entities.Item) []interface{} {
	var lat, lon sql.NullFloat64
	if item.Latitude != nil {
		lat = sql.NullFloat64{Float64: *item.Latitude, Valid: true}
	}
	if item.Longitude != nil {
		lon = sql.NullFloat64{Float64: *item.Longitude, Valid: true}
	}
	return []interface{}{
		item.ID, item.Name, item.Description, item.Address, item.City,
		item.State, item.Image, pq.StringArray(item.ExtraImages),
		item.OpeningHours, item.TicketPrice, item.BestSeason, item.Climate,
		item.Rating, item.RatingCount, pq.StringArray(item.Tips),
		pq.StringArray(item.Infrastructure), pq.StringArray(item.Attractions),
		item.Featured, lat, lon,
	}
}

const itemColumns = `id, nome, descricao, endereco, cidade, estado, imagem,
	imagens_adicionais, horario_funcionamento, preco_entrada, melhor_epoca,
	clima, avaliacao, numero_avaliacoes, dicas, infraestrutura, atracoes,
	destaque, latitude, longitude`

func (r *ItemRepositoryImpl) List(ctx context.Context, filter ports.ItemFilter) ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM itens`
	var conditions []string
	args := []interface{}{}

	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conditions = append(conditions, fmt.Sprintf("destaque = $%d", len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(nome ILIKE $%d OR descricao ILIKE $%d)", len(args), len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY nome`

	var rows []itemRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items := make([]*entities.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *ItemRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM itens WHERE id = $1`

	var row itemRow
	if err := r.db.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ItemRepositoryImpl) Create(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	created := *item
	if created.ID == "" {
		created.ID = uuid.New().String()
	}

	query := `
		INSERT INTO itens (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	if _, err := r.db.DB.ExecContext(ctx, query, itemArgs(&created)...); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return &created, nil
}

func (r *ItemRepositoryImpl) Update(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	query := `
		UPDATE itens
		SET nome = $2, descricao = $3, endereco = $4, cidade = $5, estado = $6,
			imagem = $7, imagens_adicionais = $8, horario_funcionamento = $9,
			preco_entrada = $10, melhor_epoca = $11, clima = $12, avaliacao = $13,
			numero_avaliacoes = $14, dicas = $15, infraestrutura = $16,
			atracoes = $17, destaque = $18, latitude = $19, longitude = $20
		WHERE id = $1`

	res, err := r.db.DB.ExecContext(ctx, query, itemArgs(item)...)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if affected == 0 {
		return nil, entities.ErrItemNotFound
	}

	updated := *item
	return &updated, nil
}

func (r *ItemRepositoryImpl) Delete(ctx context.Context, id string) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM itens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if affected == 0 {
		return entities.ErrItemNotFound
	}
	return nil
}
