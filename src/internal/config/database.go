package config

import (
	"fmt"

	"tour-service/src/internal/repository"
	"tour-service/src/pkg/databases/mysql"
	"tour-service/src/pkg/log"

	"github.com/spf13/viper"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDatabase(viper *viper.Viper, log log.Log) mysql.DBInterface {
	db, err := mysql.InitConnection(viper, log)
	if err != nil {
		log.Error("database init", err.Error(), "config", "")
		panic(err)
	}

	if viper.GetBool("database.migrate") {
		if err := Migrate(db, log); err != nil {
			log.Error("database migrate", err.Error(), "config", "")
			panic(err)
		}
	}
	return db
}

// Migrate runs the gorm AutoMigrate over the pool sqlx already opened.
func Migrate(db mysql.DBInterface, log log.Log) error {
	sqlxDB, err := db.GetDB()
	if err != nil {
		return err
	}
	gormDB, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlxDB.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}
	if err := repository.Migrate(gormDB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("database migrate", "schema is up to date", "config", "")
	return nil
}
