package data

import (
	"github.com/fpawel/partners/internal/inventory"
	"github.com/jmoiron/sqlx"
)

func (x DB) ListProducts() (products []inventory.Product, err error) {
	err = x.withTable(TableProducts, func(db *sqlx.DB) error {
		if err := db.Select(&products, `SELECT * FROM products ORDER BY product_id`); err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		return nil
	})
	return
}

func (x DB) ListSales() (sales []inventory.PartnerSale, err error) {
	err = x.withTables([]string{TableSales, TableProducts}, func(db *sqlx.DB) error {
		if err := db.Select(&sales, `
SELECT sales.*, products.name AS product_name FROM sales
INNER JOIN products USING (product_id)
ORDER BY sale_id`); err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		return nil
	})
	return
}

// ListPartnerSales returns the sales history of one partner, oldest first.
func (x DB) ListPartnerSales(partnerID int64) (sales []inventory.PartnerSale, err error) {
	err = x.withTables([]string{TableSales, TableProducts}, func(db *sqlx.DB) error {
		if err := db.Select(&sales, `
SELECT sales.*, products.name AS product_name FROM sales
INNER JOIN products USING (product_id)
WHERE partner_id = ?
ORDER BY sale_date, sale_id`, partnerID); err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		return nil
	})
	return
}
