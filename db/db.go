package db

import (
	"errors"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to MySQL when mysqlDSN is set, SQLite otherwise
func Open(mysqlDSN, sqliteFile string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if mysqlDSN != "" {
		dialector = mysql.Open(mysqlDSN)
	} else if sqliteFile != "" {
		dialector = sqlite.Open(sqliteFile)
	} else {
		return nil, errors.New("neither MYSQL_DSN nor SQLITE_FILE configured")
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
