package data

import (
	"database/sql"
	"github.com/ansel1/merry"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

var (
	ErrSchema            = merry.New("не удалось создать таблицы базы данных")
	ErrSchemaMissing     = merry.New("таблица не существует")
	ErrNotFound          = merry.New("запись не найдена")
	ErrDatabaseOperation = merry.New("ошибка базы данных")
	ErrPartnerInUse      = merry.New("партнёр используется в продажах")
	errUnsupportedDriver = merry.New("драйвер базы данных не поддерживается")
)

const (
	// DriverCgo is github.com/mattn/go-sqlite3.
	DriverCgo = "sqlite3"
	// DriverPureGo is modernc.org/sqlite, for builds with CGO_ENABLED=0.
	DriverPureGo = "sqlite"

	TablePartners = "partners"
	TableProducts = "products"
	TableSales    = "sales"
)

// DB is a handle to the database file. It holds no connection: each
// operation opens the file and closes it before returning.
type DB struct {
	filename string
	driver   string
}

func New(filename, driver string) DB {
	if driver == "" {
		driver = DriverCgo
	}
	return DB{filename: filename, driver: driver}
}

func (x DB) Filename() string {
	return x.filename
}

// Session opens the database, enables foreign keys and runs f. The
// connection is closed on every path out of Session.
func (x DB) Session(f func(db *sqlx.DB) error) (err error) {
	db, err := openSqliteDBx(x.driver, x.filename)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := db.Close(); errClose != nil && err == nil {
			err = merry.Wrap(errClose)
		}
	}()
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return merry.Wrap(err)
	}
	return f(db)
}

// CreateSchema creates the partners, products and sales tables if they
// are absent. It is safe to call on an existing database.
func (x DB) CreateSchema() error {
	err := x.Session(func(db *sqlx.DB) error {
		_, err := db.Exec(SQLCreate)
		return err
	})
	if err != nil {
		return ErrSchema.Here().WithCause(err).Appendf("%s", x.filename)
	}
	return nil
}

func (x DB) TableExists(table string) (exists bool, err error) {
	err = x.Session(func(db *sqlx.DB) error {
		exists, err = tableExists(db, table)
		return err
	})
	return
}

type Counts struct {
	Partners int64 `db:"partners"`
	Products int64 `db:"products"`
	Sales    int64 `db:"sales"`
}

// AnyEmpty reports whether at least one of the tables has no rows.
func (x Counts) AnyEmpty() bool {
	return x.Partners == 0 || x.Products == 0 || x.Sales == 0
}

func (x DB) Counts() (c Counts, err error) {
	err = x.Session(func(db *sqlx.DB) error {
		return db.Get(&c, `
SELECT (SELECT count(*) FROM partners) AS partners,
       (SELECT count(*) FROM products) AS products,
       (SELECT count(*) FROM sales)    AS sales`)
	})
	if err != nil {
		return Counts{}, ErrSchema.Here().WithCause(err)
	}
	return
}

// withTable runs f in a session after checking that table exists.
func (x DB) withTable(table string, f func(db *sqlx.DB) error) error {
	return x.withTables([]string{table}, f)
}

// withTables runs f in a session after checking that every one of tables
// exists.
func (x DB) withTables(tables []string, f func(db *sqlx.DB) error) error {
	return x.Session(func(db *sqlx.DB) error {
		for _, table := range tables {
			exists, err := tableExists(db, table)
			if err != nil {
				return ErrDatabaseOperation.Here().WithCause(err)
			}
			if !exists {
				return ErrSchemaMissing.Here().Appendf("%q", table)
			}
		}
		return f(db)
	})
}

func tableExists(db *sqlx.DB, table string) (bool, error) {
	var n int
	err := db.Get(&n, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
	return n > 0, err
}

func openSqliteDB(driver, fileName string) (*sql.DB, error) {
	if driver != DriverCgo && driver != DriverPureGo {
		return nil, errUnsupportedDriver.Here().Appendf("%q", driver)
	}
	conn, err := sql.Open(driver, fileName)
	if err != nil {
		return nil, merry.Wrap(err)
	}
	conn.SetMaxIdleConns(1)
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)
	return conn, nil
}

func openSqliteDBx(driver, fileName string) (*sqlx.DB, error) {
	conn, err := openSqliteDB(driver, fileName)
	if err != nil {
		return nil, err
	}
	// both drivers take '?' placeholders
	return sqlx.NewDb(conn, DriverCgo), nil
}

func getNewInsertedID(r sql.Result) (int64, error) {
	id, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, merry.New("was not inserted")
	}
	return id, nil
}
