package repository

import (
	"context"
	"time"

	"tour-service/src/internal/entity"
	"tour-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type BookingRepository struct {
	DB mysql.DBInterface
}

func NewBookingRepository(db mysql.DBInterface) *BookingRepository {
	return &BookingRepository{
		DB: db,
	}
}

const bookingColumns = `
	b.id, b.product_id, b.user_id, b.start_date_time, b.end_date_time,
	b.offering_price, b.add_ons, b.total_persons, b.status, b.admin_message,
	b.created_at, b.updated_at`

const bookingDetailQuery = `
	SELECT ` + bookingColumns + `,
		p.title AS product_title,
		p.rating AS product_rating,
		u.full_name AS customer_name,
		u.email AS customer_email
	FROM bookings b
	JOIN products p ON p.id = b.product_id
	LEFT JOIN users u ON u.id = b.user_id`

func (r *BookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bookings (
			id, product_id, user_id, start_date_time, end_date_time,
			offering_price, add_ons, total_persons, status, admin_message,
			created_at, updated_at
		) VALUES (
			:id, :product_id, :user_id, :start_date_time, :end_date_time,
			:offering_price, :add_ons, :total_persons, :status, :admin_message,
			:created_at, :updated_at
		)`
	_, err = db.NamedExecContext(ctx, query, booking)
	return mysql.TranslateError(err)
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var booking entity.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = ?`
	if err = db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindDetailByID(ctx context.Context, id string) (*entity.BookingDetail, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var detail entity.BookingDetail
	if err = db.GetContext(ctx, &detail, bookingDetailQuery+` WHERE b.id = ?`, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]entity.BookingDetail, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]entity.BookingDetail, 0)
	query := bookingDetailQuery + ` WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id ASC`
	if err = db.SelectContext(ctx, &details, query, userID); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *BookingRepository) ListForAdmin(ctx context.Context, status *entity.BookingStatus) ([]entity.BookingDetail, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]entity.BookingDetail, 0)
	if status == nil {
		err = db.SelectContext(ctx, &details, bookingDetailQuery+` ORDER BY b.created_at DESC, b.id ASC`)
	} else {
		err = db.SelectContext(ctx, &details, bookingDetailQuery+` WHERE b.status = ? ORDER BY b.created_at DESC, b.id ASC`, *status)
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *BookingRepository) UpdateOffer(ctx context.Context, booking *entity.Booking, from []entity.BookingStatus) (bool, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return false, err
	}

	query, args, err := sqlx.In(`
		UPDATE bookings
		SET start_date_time = ?, end_date_time = ?, offering_price = ?, add_ons = ?,
			total_persons = ?, status = ?, admin_message = NULL, updated_at = ?
		WHERE id = ? AND status IN (?)`,
		booking.StartDateTime, booking.EndDateTime, booking.OfferingPrice, booking.AddOns,
		booking.TotalPersons, entity.BookingOffering, time.Now().UTC(),
		booking.ID, from,
	)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to entity.BookingStatus, adminMessage *string) (bool, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE bookings
		SET status = ?, admin_message = COALESCE(?, admin_message), updated_at = ?
		WHERE id = ? AND status = ?`
	res, err := db.ExecContext(ctx, query, to, adminMessage, time.Now().UTC(), id, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *BookingRepository) UpdateAdminMessage(ctx context.Context, id string, adminMessage *string) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `UPDATE bookings SET admin_message = ?, updated_at = ? WHERE id = ?`,
		adminMessage, time.Now().UTC(), id)
	return err
}

func (r *BookingRepository) Delete(ctx context.Context, id string, allowed []entity.BookingStatus) (bool, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return false, err
	}

	query, args, err := sqlx.In(`DELETE FROM bookings WHERE id = ? AND status IN (?)`, id, allowed)
	if err != nil {
		return false, err
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
