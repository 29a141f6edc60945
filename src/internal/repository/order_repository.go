package repository

import (
	"context"
	"time"

	"tour-service/src/internal/entity"
	"tour-service/src/pkg/databases/mysql"
)

type OrderRepository struct {
	DB mysql.DBInterface
}

func NewOrderRepository(db mysql.DBInterface) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

// Orders are listed newest approval first; ties fall back to id.
const orderDetailQuery = `
	SELECT
		o.id,
		o.payment_id,
		o.user_id,
		o.product_id,
		o.status,
		o.created_at,
		o.updated_at,
		pm.booking_id,
		p.title AS product_title,
		b.start_date_time,
		b.end_date_time,
		b.total_persons,
		pm.total,
		u.full_name AS customer_name,
		u.email AS customer_email,
		r.rating AS review_rating
	FROM orders o
	JOIN payments pm ON pm.id = o.payment_id
	JOIN bookings b ON b.id = pm.booking_id
	JOIN products p ON p.id = o.product_id
	LEFT JOIN users u ON u.id = o.user_id
	LEFT JOIN reviews r ON r.order_id = o.id`

const orderDetailSort = ` ORDER BY o.created_at DESC, o.id ASC`

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (id, payment_id, user_id, product_id, status, created_at, updated_at)
		VALUES (:id, :payment_id, :user_id, :product_id, :status, :created_at, :updated_at)`
	_, err = db.NamedExecContext(ctx, query, order)
	return mysql.TranslateError(err)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var order entity.Order
	query := `
		SELECT id, payment_id, user_id, product_id, status, created_at, updated_at
		FROM orders WHERE id = ?`
	if err = db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindDetailByID(ctx context.Context, id string) (*entity.OrderDetail, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var detail entity.OrderDetail
	if err = db.GetContext(ctx, &detail, orderDetailQuery+` WHERE o.id = ?`, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.OrderDetail, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]entity.OrderDetail, 0)
	if err = db.SelectContext(ctx, &details, orderDetailQuery+` WHERE o.user_id = ?`+orderDetailSort, userID); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.OrderDetail, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]entity.OrderDetail, 0)
	if err = db.SelectContext(ctx, &details, orderDetailQuery+orderDetailSort); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		to, time.Now().UTC(), id, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
