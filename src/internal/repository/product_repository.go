package repository

import (
	"context"

	"tour-service/src/internal/entity"
	"tour-service/src/pkg/databases/mysql"
)

type ProductRepository struct {
	DB mysql.DBInterface
}

func NewProductRepository(db mysql.DBInterface) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var product entity.Product
	if err = db.GetContext(ctx, &product, `SELECT id, title, rating FROM products WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `UPDATE products SET rating = ? WHERE id = ?`, rating, id)
	return err
}
