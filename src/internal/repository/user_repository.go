package repository

import (
	"context"

	"tour-service/src/internal/entity"
	"tour-service/src/pkg/databases/mysql"
)

type UserRepository struct {
	DB mysql.DBInterface
}

func NewUserRepository(db mysql.DBInterface) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	db, err := r.DB.Conn(ctx)
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err = db.GetContext(ctx, &user, `SELECT id, full_name, email FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &user, nil
}
