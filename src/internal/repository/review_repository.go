package repository

import (
	"context"

	"tour-service/src/internal/entity"
	"tour-service/src/pkg/databases/mysql"
)

type ReviewRepository struct {
	DB mysql.DBInterface
}

func NewReviewRepository(db mysql.DBInterface) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO reviews (id, order_id, product_id, user_id, rating, message_review, created_at, updated_at)
		VALUES (:id, :order_id, :product_id, :user_id, :rating, :message_review, :created_at, :updated_at)`
	_, err = db.NamedExecContext(ctx, query, review)
	return mysql.TranslateError(err)
}

func (r *ReviewRepository) RatingsByProduct(ctx context.Context, productID string) ([]int, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	ratings := make([]int, 0)
	if err = db.SelectContext(ctx, &ratings, `SELECT rating FROM reviews WHERE product_id = ?`, productID); err != nil {
		return nil, err
	}
	return ratings, nil
}
