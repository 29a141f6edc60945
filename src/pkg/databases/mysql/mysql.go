package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tour-service/src/pkg/log"

	driver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

// ErrDuplicate is returned when an insert hits a unique key.
var ErrDuplicate = errors.New("duplicate entry")

const errCodeDuplicateEntry = 1062

// Querier is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	Rebind(query string) string
}

type DBInterface interface {
	GetDB() (*sqlx.DB, error)
	// Conn returns the transaction bound to ctx, or the pool when there is none.
	Conn(ctx context.Context) (Querier, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Close() error
}

type txKey struct{}

type database struct {
	db  *sqlx.DB
	log log.Log
}

func InitConnection(v *viper.Viper, logger log.Log) (DBInterface, error) {
	cfg := driver.NewConfig()
	cfg.User = v.GetString("database.username")
	cfg.Passwd = v.GetString("database.password")
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", v.GetString("database.host"), v.GetInt("database.port"))
	cfg.DBName = v.GetString("database.name")
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	db, err := sqlx.Connect("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	db.SetMaxOpenConns(v.GetInt("database.pool.max_open"))
	db.SetMaxIdleConns(v.GetInt("database.pool.max_idle"))
	db.SetConnMaxLifetime(v.GetDuration("database.pool.max_lifetime"))

	logger.Info("mysql", "connected to database", "InitConnection", cfg.Addr)
	return &database{db: db, log: logger}, nil
}

// NewFromDB wraps an existing connection pool.
func NewFromDB(db *sqlx.DB, logger log.Log) DBInterface {
	return &database{db: db, log: logger}
}

func (d *database) GetDB() (*sqlx.DB, error) {
	if d.db == nil {
		return nil, errors.New("database is not initialized")
	}
	return d.db, nil
}

func (d *database) Conn(ctx context.Context) (Querier, error) {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx, nil
	}
	return d.GetDB()
}

// WithTransaction runs fn inside a single transaction. Any error or panic
// from fn rolls back every write; a nested call joins the outer transaction.
func (d *database) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	db, err := d.GetDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				d.log.Error("mysql", rbErr.Error(), "WithTransaction-rollback", err.Error())
			}
			return
		}
		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("commit transaction: %w", err)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, tx))
}

func (d *database) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// TranslateError maps driver errors onto package sentinels.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *driver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errCodeDuplicateEntry {
		return fmt.Errorf("%w: %s", ErrDuplicate, mysqlErr.Message)
	}
	return err
}
