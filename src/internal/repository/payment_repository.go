package repository

import (
	"context"
	"time"

	"tour-service/src/internal/entity"
	"tour-service/src/pkg/databases/mysql"
)

type PaymentRepository struct {
	DB mysql.DBInterface
}

func NewPaymentRepository(db mysql.DBInterface) *PaymentRepository {
	return &PaymentRepository{
		DB: db,
	}
}

const paymentColumns = `
	pm.id, pm.booking_id, pm.tax, pm.sub_total, pm.total, pm.method, pm.status,
	pm.created_at, pm.updated_at`

const paymentDetailQuery = `
	SELECT ` + paymentColumns + `,
		b.user_id,
		b.product_id,
		p.title AS product_title,
		b.start_date_time,
		b.end_date_time,
		b.total_persons,
		u.full_name AS customer_name,
		u.email AS customer_email,
		bp.bank_name,
		bp.account_name AS bank_account_name,
		bp.account_number AS bank_account_number,
		bp.proof_url AS bank_proof_url,
		wp.wise_email,
		wp.account_name AS wise_account_name,
		wp.proof_url AS wise_proof_url
	FROM payments pm
	JOIN bookings b ON b.id = pm.booking_id
	JOIN products p ON p.id = b.product_id
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN bank_payments bp ON bp.payment_id = pm.id
	LEFT JOIN wise_payments wp ON wp.payment_id = pm.id`

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payments (id, booking_id, tax, sub_total, total, method, status, created_at, updated_at)
		VALUES (:id, :booking_id, :tax, :sub_total, :total, :method, :status, :created_at, :updated_at)`
	_, err = db.NamedExecContext(ctx, query, payment)
	return mysql.TranslateError(err)
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.Payment, error) {
	return r.findOne(ctx, `WHERE pm.id = ?`, id)
}

func (r *PaymentRepository) FindByBookingID(ctx context.Context, bookingID string) (*entity.Payment, error) {
	return r.findOne(ctx, `WHERE pm.booking_id = ?`, bookingID)
}

func (r *PaymentRepository) FindByBookingAndMethod(ctx context.Context, bookingID string, method entity.PaymentMethod) (*entity.Payment, error) {
	return r.findOne(ctx, `WHERE pm.booking_id = ? AND pm.method = ?`, bookingID, method)
}

func (r *PaymentRepository) findOne(ctx context.Context, where string, args ...interface{}) (*entity.Payment, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var payment entity.Payment
	if err = db.GetContext(ctx, &payment, `SELECT `+paymentColumns+` FROM payments pm `+where, args...); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) FindDetailByID(ctx context.Context, id string) (*entity.PaymentDetail, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var detail entity.PaymentDetail
	if err = db.GetContext(ctx, &detail, paymentDetailQuery+` WHERE pm.id = ?`, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *PaymentRepository) ListDetails(ctx context.Context, status *entity.PaymentStatus) ([]entity.PaymentDetail, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]entity.PaymentDetail, 0)
	if status == nil {
		err = db.SelectContext(ctx, &details, paymentDetailQuery+` ORDER BY pm.updated_at DESC, pm.id ASC`)
	} else {
		err = db.SelectContext(ctx, &details, paymentDetailQuery+` WHERE pm.status = ? ORDER BY pm.updated_at DESC, pm.id ASC`, *status)
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *PaymentRepository) UpdateMethod(ctx context.Context, id string, method entity.PaymentMethod) (bool, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `UPDATE payments SET method = ?, updated_at = ? WHERE id = ? AND status = ?`,
		method, time.Now().UTC(), id, entity.PaymentPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, from, to entity.PaymentStatus) (bool, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `UPDATE payments SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
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

func (r *PaymentRepository) MarkNeedsReview(ctx context.Context, id string, method entity.PaymentMethod) (bool, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `UPDATE payments SET status = ?, updated_at = ? WHERE id = ? AND status = ? AND method = ?`,
		entity.PaymentNeedsReview, time.Now().UTC(), id, entity.PaymentPending, method)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	for _, query := range []string{
		`DELETE FROM bank_payments WHERE payment_id = ?`,
		`DELETE FROM wise_payments WHERE payment_id = ?`,
		`DELETE FROM payments WHERE id = ?`,
	} {
		if _, err = db.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *PaymentRepository) CreateBankProof(ctx context.Context, proof *entity.BankPayment) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bank_payments (id, payment_id, bank_name, account_name, account_number, proof_url, created_at, updated_at)
		VALUES (:id, :payment_id, :bank_name, :account_name, :account_number, :proof_url, :created_at, :updated_at)`
	_, err = db.NamedExecContext(ctx, query, proof)
	return mysql.TranslateError(err)
}

func (r *PaymentRepository) CreateWiseProof(ctx context.Context, proof *entity.WisePayment) error {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO wise_payments (id, payment_id, wise_email, account_name, proof_url, created_at, updated_at)
		VALUES (:id, :payment_id, :wise_email, :account_name, :proof_url, :created_at, :updated_at)`
	_, err = db.NamedExecContext(ctx, query, proof)
	return mysql.TranslateError(err)
}

func (r *PaymentRepository) HasProof(ctx context.Context, paymentID string) (bool, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	query := `
		SELECT EXISTS (SELECT 1 FROM bank_payments WHERE payment_id = ?)
			OR EXISTS (SELECT 1 FROM wise_payments WHERE payment_id = ?)`
	if err = db.GetContext(ctx, &exists, query, paymentID, paymentID); err != nil {
		return false, err
	}
	return exists, nil
}
