package dao

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

func tables() []any {
	return []any{
		&User{},
		&Preregistration{},
		&Session{},
		&StockItem{},
		&DepositRecord{},
		&SaleRecord{},
	}
}

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(tables()...)
}

// ResetTables drops and recreates every table. Only meant for tests and
// local fixtures.
func ResetTables(db *gorm.DB) error {
	all := tables()

	// Reverse creation order so foreign keys never block a drop.
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return err
		}
	}

	return InitTables(db)
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}
