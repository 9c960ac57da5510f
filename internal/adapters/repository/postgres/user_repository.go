package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/database"
	"github.com/roteiro/core/internal/ports"
)

// UserRepositoryImpl implements ports.UserRepository on postgres.
type UserRepositoryImpl struct {
	db *database.DB
}

// NewUserRepository creates a new postgres user repository
func NewUserRepository(db *database.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

type userRow struct {
	ID        string         `db:"id"`
	Nome      string         `db:"nome"`
	Login     string         `db:"login"`
	Email     string         `db:"email"`
	Senha     string         `db:"senha"`
	Admin     bool           `db:"admin"`
	Favorites pq.StringArray `db:"favorites"`
}

func (r userRow) toEntity() *entities.User {
	return &entities.User{
		ID:           r.ID,
		Name:         r.Nome,
		Login:        r.Login,
		Email:        r.Email,
		PasswordHash: r.Senha,
		Admin:        r.Admin,
		Favorites:    append([]string{}, r.Favorites...),
	}
}

const userColumns = `id, nome, login, email, senha, admin, favorites`

func (r *UserRepositoryImpl) List(ctx context.Context, filter ports.UserFilter) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios`
	args := []interface{}{}
	if filter.Login != nil {
		query += ` WHERE login = $1`
		args = append(args, *filter.Login)
	}
	query += ` ORDER BY login`

	var rows []userRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*entities.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`

	var row userRow
	if err := r.db.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepositoryImpl) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE login = $1`

	var row userRow
	if err := r.db.DB.GetContext(ctx, &row, query, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by login: %w", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	created := *user
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	if created.Favorites == nil {
		created.Favorites = []string{}
	}

	query := `
		INSERT INTO usuarios (id, nome, login, email, senha, admin, favorites)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.DB.ExecContext(ctx, query,
		created.ID, created.Name, created.Login, created.Email,
		created.PasswordHash, created.Admin, pq.StringArray(created.Favorites),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, entities.ErrLoginTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

// Patch re-reads the latest record inside a transaction, shallow-merges the
// set fields and writes the merged record back.
func (r *UserRepositoryImpl) Patch(ctx context.Context, id string, patch ports.UserPatch) (*entities.User, error) {
	var updated *entities.User
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var row userRow
		query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &row, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entities.ErrUserNotFound
			}
			return fmt.Errorf("get user for patch: %w", err)
		}

		user := row.toEntity()
		applyUserPatch(user, patch)

		update := `
			UPDATE usuarios
			SET nome = $2, login = $3, email = $4, senha = $5, admin = $6, favorites = $7
			WHERE id = $1`
		if _, err := tx.ExecContext(ctx, update,
			user.ID, user.Name, user.Login, user.Email,
			user.PasswordHash, user.Admin, pq.StringArray(user.Favorites),
		); err != nil {
			return fmt.Errorf("patch user: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyUserPatch(u *entities.User, patch ports.UserPatch) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Login != nil {
		u.Login = *patch.Login
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Admin != nil {
		u.Admin = *patch.Admin
	}
	if patch.Favorites != nil {
		u.Favorites = dedupe(*patch.Favorites)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
