package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/persistence"
)

// PropertyRepository encapsulates listing persistence. Reads always resolve the broker.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	ListByBroker(ctx context.Context, brokerID int64) ([]domain.Property, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository instantiates repository.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

const propertyColumns = `p.id, p.name, p.description, p.type, p.active, p.value, p.area, p.bedrooms,
        p.address, p.city, p.state, b.id, b.name, p.created_at, p.updated_at`

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        WITH inserted AS (
            INSERT INTO properties (name, description, type, active, value, area, bedrooms, address, city, state, broker_id)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
            RETURNING id, broker_id, created_at, updated_at
        )
        SELECT inserted.id, users.name, inserted.created_at, inserted.updated_at
        FROM inserted JOIN users ON users.id = inserted.broker_id`

	return persistence.Conn(ctx, r.pool).QueryRow(ctx, query,
		property.Name,
		property.Description,
		property.Type,
		property.Active,
		property.Value,
		property.Area,
		property.Bedrooms,
		property.Address,
		property.City,
		property.State,
		property.Broker.ID,
	).Scan(&property.ID, &property.Broker.Name, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	const query = `
        UPDATE properties SET name=$1, description=$2, type=$3, active=$4, value=$5, area=$6,
            bedrooms=$7, address=$8, city=$9, state=$10, updated_at=NOW()
        WHERE id=$11`

	cmd, err := persistence.Conn(ctx, r.pool).Exec(ctx, query,
		property.Name,
		property.Description,
		property.Type,
		property.Active,
		property.Value,
		property.Area,
		property.Bedrooms,
		property.Address,
		property.City,
		property.State,
		property.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := persistence.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + `
        FROM properties p JOIN users b ON b.id = p.broker_id
        WHERE p.id=$1`
	return scanProperty(persistence.Conn(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + `
        FROM properties p JOIN users b ON b.id = p.broker_id
        ORDER BY p.id DESC`

	rows, err := persistence.Conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectProperties(rows)
}

func (r *propertyRepository) ListByBroker(ctx context.Context, brokerID int64) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + `
        FROM properties p JOIN users b ON b.id = p.broker_id
        WHERE p.broker_id=$1
        ORDER BY p.id DESC`

	rows, err := persistence.Conn(ctx, r.pool).Query(ctx, query, brokerID)
	if err != nil {
		return nil, err
	}
	return collectProperties(rows)
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Type,
		&p.Active,
		&p.Value,
		&p.Area,
		&p.Bedrooms,
		&p.Address,
		&p.City,
		&p.State,
		&p.Broker.ID,
		&p.Broker.Name,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProperties(rows pgx.Rows) ([]domain.Property, error) {
	defer rows.Close()

	var result []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}
