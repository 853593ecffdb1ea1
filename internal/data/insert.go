package data

import (
	"github.com/fpawel/partners/internal/inventory"
	"github.com/jmoiron/sqlx"
)

// Insert*IfAbsent are used by bulk import within a single Session. A row is
// absent when no stored row equals it on every column except the id; NULL
// compares equal to NULL. The returned flag is false for a duplicate.

func InsertPartnerIfAbsent(db *sqlx.DB, p inventory.Partner) (bool, error) {
	return namedExecInserted(db, `
INSERT INTO partners (name, partner_type, rating, address, director_name, phone, email)
SELECT :name, :partner_type, :rating, :address, :director_name, :phone, :email
WHERE NOT EXISTS(
    SELECT 1 FROM partners
    WHERE name = :name
      AND partner_type = :partner_type
      AND rating = :rating
      AND address IS :address
      AND director_name IS :director_name
      AND phone IS :phone
      AND email IS :email)`, p)
}

func InsertProductIfAbsent(db *sqlx.DB, p inventory.Product) (bool, error) {
	return namedExecInserted(db, `
INSERT INTO products (name, product_type_id, param1, param2)
SELECT :name, :product_type_id, :param1, :param2
WHERE NOT EXISTS(
    SELECT 1 FROM products
    WHERE name = :name
      AND product_type_id = :product_type_id
      AND param1 = :param1
      AND param2 = :param2)`, p)
}

func InsertSaleIfAbsent(db *sqlx.DB, s inventory.Sale) (bool, error) {
	return namedExecInserted(db, `
INSERT INTO sales (partner_id, product_id, quantity, sale_date)
SELECT :partner_id, :product_id, :quantity, :sale_date
WHERE NOT EXISTS(
    SELECT 1 FROM sales
    WHERE partner_id = :partner_id
      AND product_id = :product_id
      AND quantity = :quantity
      AND sale_date = :sale_date)`, s)
}

type IDSet map[int64]struct{}

func (x IDSet) Has(id int64) bool {
	_, ok := x[id]
	return ok
}

func PartnerIDs(db *sqlx.DB) (IDSet, error) {
	return selectIDs(db, `SELECT partner_id FROM partners`)
}

func ProductIDs(db *sqlx.DB) (IDSet, error) {
	return selectIDs(db, `SELECT product_id FROM products`)
}

func selectIDs(db *sqlx.DB, query string) (IDSet, error) {
	var xs []int64
	if err := db.Select(&xs, query); err != nil {
		return nil, ErrDatabaseOperation.Here().WithCause(err)
	}
	ids := make(IDSet, len(xs))
	for _, id := range xs {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func namedExecInserted(db *sqlx.DB, query string, arg interface{}) (bool, error) {
	r, err := db.NamedExec(query, arg)
	if err != nil {
		return false, ErrDatabaseOperation.Here().WithCause(err)
	}
	n, err := r.RowsAffected()
	if err != nil {
		return false, ErrDatabaseOperation.Here().WithCause(err)
	}
	return n > 0, nil
}
