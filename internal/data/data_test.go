package data

import (
	"github.com/ansel1/merry"
	"github.com/fpawel/partners/internal/inventory"
	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) DB {
	t.Helper()
	db := New(filepath.Join(t.TempDir(), "partners.db"), DriverCgo)
	require.NoError(t, db.CreateSchema())
	return db
}

func TestCreateSchemaIdempotent(t *testing.T) {
	db := newTestDB(t)
	_, err := db.CreatePartner(inventory.Partner{Name: "Acme", PartnerType: "1 тип", Rating: 1})
	require.NoError(t, err)

	require.NoError(t, db.CreateSchema())

	c, err := db.Counts()
	require.NoError(t, err)
	assert.Equal(t, Counts{Partners: 1}, c)
	assert.True(t, c.AnyEmpty())
	for _, table := range []string{TablePartners, TableProducts, TableSales} {
		exists, err := db.TableExists(table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
}

func TestCreateSchemaFails(t *testing.T) {
	db := New(filepath.Join(t.TempDir(), "no-such-dir", "partners.db"), DriverCgo)
	err := db.CreateSchema()
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrSchema))
}

func TestUnsupportedDriver(t *testing.T) {
	db := New(filepath.Join(t.TempDir(), "partners.db"), "postgres")
	assert.Error(t, db.CreateSchema())
}

func TestPureGoDriver(t *testing.T) {
	db := New(filepath.Join(t.TempDir(), "partners.db"), DriverPureGo)
	require.NoError(t, db.CreateSchema())
	id, err := db.CreatePartner(inventory.Partner{Name: "Acme", PartnerType: "1 тип", Rating: 2})
	require.NoError(t, err)
	p, err := db.GetPartner(id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.Name)
}

func TestCreateThenGetPartner(t *testing.T) {
	db := newTestDB(t)
	for _, in := range []inventory.Partner{
		{Name: "Acme", PartnerType: "1 тип", Rating: 5},
		{Name: "База", PartnerType: "2 тип", Rating: 0,
			Address:      inventory.Optional("Москва"),
			DirectorName: inventory.Optional("Иванов И.И."),
			Phone:        inventory.Optional("+7 999 000 00 00"),
			Email:        inventory.Optional("baza@example.com")},
	} {
		id, err := db.CreatePartner(in)
		require.NoError(t, err)
		require.True(t, id > 0)

		got, err := db.GetPartner(id)
		require.NoError(t, err)
		in.PartnerID = id
		if diff := cmp.Diff(in, got); diff != "" {
			t.Errorf("partner mismatch (-want +got):\n%s", diff)
		}
	}
	partners, err := db.ListPartners()
	require.NoError(t, err)
	assert.Len(t, partners, 2)
}

func TestCreatePartnerBlankOptionalIsNull(t *testing.T) {
	db := newTestDB(t)
	id, err := db.CreatePartner(inventory.Partner{
		Name: "Acme", PartnerType: "1 тип", Rating: 1, Email: inventory.Optional(""), Phone: new(string),
	})
	require.NoError(t, err)
	var nulls int
	require.NoError(t, db.Session(func(db *sqlx.DB) error {
		return db.Get(&nulls, `SELECT count(*) FROM partners WHERE partner_id = ? AND email IS NULL AND phone IS NULL`, id)
	}))
	assert.Equal(t, 1, nulls)
}

func TestCreatePartnerInvalid(t *testing.T) {
	db := newTestDB(t)
	_, err := db.CreatePartner(inventory.Partner{Name: "", PartnerType: "1 тип", Rating: 1})
	assert.True(t, merry.Is(err, inventory.ErrInvalid))
	_, err = db.CreatePartner(inventory.Partner{Name: "Acme", PartnerType: "1 тип", Rating: -3})
	assert.True(t, merry.Is(err, inventory.ErrInvalid))

	partners, err := db.ListPartners()
	require.NoError(t, err)
	assert.Empty(t, partners)
}

func TestUpdatePartner(t *testing.T) {
	db := newTestDB(t)
	id, err := db.CreatePartner(inventory.Partner{Name: "Acme", PartnerType: "1 тип", Rating: 1, Phone: inventory.Optional("1")})
	require.NoError(t, err)

	upd := inventory.Partner{PartnerID: id, Name: "Acme Ltd", PartnerType: "3 тип", Rating: 9}
	require.NoError(t, db.UpdatePartner(upd))

	got, err := db.GetPartner(id)
	require.NoError(t, err)
	assert.Equal(t, upd, got)

	err = db.UpdatePartner(inventory.Partner{PartnerID: id + 100, Name: "X", PartnerType: "1 тип"})
	assert.True(t, merry.Is(err, ErrNotFound))
}

func TestGetPartnerNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetPartner(42)
	assert.True(t, merry.Is(err, ErrNotFound))

	exists, err := db.PartnerExists(42)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSchemaMissing(t *testing.T) {
	db := New(filepath.Join(t.TempDir(), "empty.db"), DriverCgo)

	_, err := db.ListPartners()
	assert.True(t, merry.Is(err, ErrSchemaMissing))
	_, err = db.GetPartner(1)
	assert.True(t, merry.Is(err, ErrSchemaMissing))
	_, err = db.CreatePartner(inventory.Partner{Name: "Acme", PartnerType: "1 тип"})
	assert.True(t, merry.Is(err, ErrSchemaMissing))
	err = db.UpdatePartner(inventory.Partner{PartnerID: 1, Name: "Acme", PartnerType: "1 тип"})
	assert.True(t, merry.Is(err, ErrSchemaMissing))
	_, err = db.PartnerExists(1)
	assert.True(t, merry.Is(err, ErrSchemaMissing))

	exists, err := db.TableExists(TablePartners)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListSalesProductsMissing(t *testing.T) {
	db := New(filepath.Join(t.TempDir(), "sales-only.db"), DriverCgo)
	require.NoError(t, db.Session(func(db *sqlx.DB) error {
		_, err := db.Exec(`
CREATE TABLE sales (
    sale_id    INTEGER PRIMARY KEY,
    partner_id INTEGER NOT NULL,
    product_id INTEGER NOT NULL,
    quantity   INTEGER NOT NULL,
    sale_date  TEXT    NOT NULL
)`)
		return err
	}))

	_, err := db.ListSales()
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrSchemaMissing))
	assert.False(t, merry.Is(err, ErrDatabaseOperation))

	_, err = db.ListPartnerSales(1)
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrSchemaMissing))
}

func seedSale(t *testing.T, db DB) (partnerID, productID int64) {
	t.Helper()
	partnerID, err := db.CreatePartner(inventory.Partner{Name: "Acme", PartnerType: "1 тип", Rating: 1})
	require.NoError(t, err)
	require.NoError(t, db.Session(func(x *sqlx.DB) error {
		ok, err := InsertProductIfAbsent(x, inventory.Product{Name: "Ламинат", ProductTypeID: 1, Param1: 2, Param2: 3})
		require.True(t, ok)
		if err != nil {
			return err
		}
		ids, err := ProductIDs(x)
		if err != nil {
			return err
		}
		for id := range ids {
			productID = id
		}
		ok, err = InsertSaleIfAbsent(x, inventory.Sale{PartnerID: partnerID, ProductID: productID, Quantity: 4, SaleDate: "2024-03-01"})
		require.True(t, ok)
		return err
	}))
	return
}

func TestDeleteReferencedPartnerRestricted(t *testing.T) {
	db := newTestDB(t)
	partnerID, productID := seedSale(t, db)

	err := db.DeletePartner(partnerID)
	assert.True(t, merry.Is(err, ErrPartnerInUse))

	// the foreign key refuses the delete without the explicit check too
	err = db.Session(func(x *sqlx.DB) error {
		_, err := x.Exec(`DELETE FROM partners WHERE partner_id = ?`, partnerID)
		return err
	})
	assert.Error(t, err)
	err = db.Session(func(x *sqlx.DB) error {
		_, err := x.Exec(`DELETE FROM products WHERE product_id = ?`, productID)
		return err
	})
	assert.Error(t, err)

	exists, err := db.PartnerExists(partnerID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeletePartner(t *testing.T) {
	db := newTestDB(t)
	id, err := db.CreatePartner(inventory.Partner{Name: "Acme", PartnerType: "1 тип"})
	require.NoError(t, err)
	require.NoError(t, db.DeletePartner(id))
	assert.True(t, merry.Is(db.DeletePartner(id), ErrNotFound))
}

func TestInsertIfAbsent(t *testing.T) {
	db := newTestDB(t)
	p := inventory.Partner{Name: "Acme", PartnerType: "1 тип", Rating: 5}
	require.NoError(t, db.Session(func(x *sqlx.DB) error {
		ok, err := InsertPartnerIfAbsent(x, p)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = InsertPartnerIfAbsent(x, p)
		require.NoError(t, err)
		assert.False(t, ok, "duplicate with NULL optional fields")

		p.Email = inventory.Optional("a@b.c")
		ok, err = InsertPartnerIfAbsent(x, p)
		require.NoError(t, err)
		assert.True(t, ok)

		ids, err := PartnerIDs(x)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
		return nil
	}))
}

func TestInsertSaleUnknownPartner(t *testing.T) {
	db := newTestDB(t)
	err := db.Session(func(x *sqlx.DB) error {
		_, err := InsertSaleIfAbsent(x, inventory.Sale{PartnerID: 1, ProductID: 1, Quantity: 1, SaleDate: "2024-01-01"})
		return err
	})
	assert.True(t, merry.Is(err, ErrDatabaseOperation))
}

func TestListPartnerSales(t *testing.T) {
	db := newTestDB(t)
	partnerID, productID := seedSale(t, db)

	sales, err := db.ListPartnerSales(partnerID)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, productID, sales[0].ProductID)
	assert.Equal(t, "Ламинат", sales[0].ProductName)
	assert.Equal(t, int64(4), sales[0].Quantity)

	sales, err = db.ListPartnerSales(partnerID + 1)
	require.NoError(t, err)
	assert.Empty(t, sales)

	all, err := db.ListSales()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	products, err := db.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2.0, products[0].Param1)
}
