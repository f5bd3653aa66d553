package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/zionren/corkboard/pkg/models"
)

// ListFilter is the store-side predicate: equality on category,
// case-insensitive substring OR-matched across the text columns, ordering
// by one field.
type ListFilter struct {
	Category     models.Category
	Search       string
	SearchRPName bool
	Sort         models.SortOrder
}

type PinRepository interface {
	List(f ListFilter) ([]models.Pin, error)
	Get(id string) (models.Pin, error)
	Insert(req models.PinRequest) (models.Pin, error)
	Update(id string, req models.PinRequest) (models.Pin, error)
	Delete(id, authorID string) (models.Pin, error)
	AdminDelete(id string) (models.Pin, error)
	DeleteMany(ids []string) ([]models.Pin, error)
}

type pinRepository struct {
	db *sql.DB
}

func NewPinRepository(db *sql.DB) PinRepository {
	return &pinRepository{db: db}
}

const pinColumns = `id, COALESCE(rp_name, ''), nickname, main, message, author_id, created_at, updated_at`

func (r *pinRepository) List(f ListFilter) ([]models.Pin, error) {
	var where []string
	var args []interface{}

	if f.Category != "" {
		args = append(args, string(f.Category))
		where = append(where, fmt.Sprintf("main = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		or := []string{
			fmt.Sprintf("nickname ILIKE $%d", n),
			fmt.Sprintf("message ILIKE $%d", n),
		}
		if f.SearchRPName {
			or = append(or, fmt.Sprintf("rp_name ILIKE $%d", n))
		}
		where = append(where, "("+strings.Join(or, " OR ")+")")
	}

	query := "SELECT " + pinColumns + " FROM pins"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderClause(f.Sort)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPins(rows)
}

func orderClause(sort models.SortOrder) string {
	switch models.ParseSortOrder(string(sort)) {
	case models.SortOldest:
		return "created_at ASC"
	case models.SortAlphaAsc:
		return "nickname ASC"
	case models.SortAlphaDesc:
		return "nickname DESC"
	default:
		return "created_at DESC"
	}
}

func (r *pinRepository) Get(id string) (models.Pin, error) {
	var p models.Pin
	err := r.db.QueryRow(`SELECT `+pinColumns+` FROM pins WHERE id = $1`, id).Scan(
		&p.ID, &p.RPName, &p.Nickname, &p.Category, &p.Message, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *pinRepository) Insert(req models.PinRequest) (models.Pin, error) {
	var p models.Pin
	err := r.db.QueryRow(`
		INSERT INTO pins (rp_name, nickname, main, message, author_id)
		VALUES (NULLIF($1, ''), $2, $3, $4, $5)
		RETURNING `+pinColumns+`
	`, req.RPName, req.Nickname, string(req.Category), req.Message, req.AuthorID).Scan(
		&p.ID, &p.RPName, &p.Nickname, &p.Category, &p.Message, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *pinRepository) Update(id string, req models.PinRequest) (models.Pin, error) {
	var p models.Pin
	err := r.db.QueryRow(`
		UPDATE pins
		SET rp_name = NULLIF($1, ''), nickname = $2, main = $3, message = $4, updated_at = NOW()
		WHERE id = $5 AND author_id = $6
		RETURNING `+pinColumns+`
	`, req.RPName, req.Nickname, string(req.Category), req.Message, id, req.AuthorID).Scan(
		&p.ID, &p.RPName, &p.Nickname, &p.Category, &p.Message, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *pinRepository) Delete(id, authorID string) (models.Pin, error) {
	var p models.Pin
	err := r.db.QueryRow(`
		DELETE FROM pins WHERE id = $1 AND author_id = $2
		RETURNING `+pinColumns+`
	`, id, authorID).Scan(
		&p.ID, &p.RPName, &p.Nickname, &p.Category, &p.Message, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *pinRepository) AdminDelete(id string) (models.Pin, error) {
	var p models.Pin
	err := r.db.QueryRow(`
		DELETE FROM pins WHERE id = $1
		RETURNING `+pinColumns+`
	`, id).Scan(
		&p.ID, &p.RPName, &p.Nickname, &p.Category, &p.Message, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *pinRepository) DeleteMany(ids []string) ([]models.Pin, error) {
	rows, err := r.db.Query(`
		DELETE FROM pins WHERE id = ANY($1)
		RETURNING `+pinColumns+`
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPins(rows)
}

func scanPins(rows *sql.Rows) ([]models.Pin, error) {
	pins := []models.Pin{}
	for rows.Next() {
		var p models.Pin
		if err := rows.Scan(
			&p.ID, &p.RPName, &p.Nickname, &p.Category, &p.Message, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pins = append(pins, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pins, nil
}
