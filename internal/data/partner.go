package data

import (
	"database/sql"
	"github.com/fpawel/partners/internal/inventory"
	"github.com/jmoiron/sqlx"
)

func (x DB) ListPartners() (partners []inventory.Partner, err error) {
	err = x.withTable(TablePartners, func(db *sqlx.DB) error {
		if err := db.Select(&partners, `SELECT * FROM partners ORDER BY partner_id`); err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		return nil
	})
	return
}

func (x DB) GetPartner(partnerID int64) (p inventory.Partner, err error) {
	err = x.withTable(TablePartners, func(db *sqlx.DB) error {
		err := db.Get(&p, `SELECT * FROM partners WHERE partner_id = ?`, partnerID)
		if err == sql.ErrNoRows {
			return ErrNotFound.Here().Appendf("партнёр %d", partnerID)
		}
		if err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		return nil
	})
	return
}

func (x DB) PartnerExists(partnerID int64) (exists bool, err error) {
	err = x.withTable(TablePartners, func(db *sqlx.DB) error {
		var n int
		if err := db.Get(&n, `SELECT count(*) FROM partners WHERE partner_id = ?`, partnerID); err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		exists = n > 0
		return nil
	})
	return
}

// CreatePartner inserts a new partner and returns the identifier assigned
// by the database. PartnerID of p is ignored.
func (x DB) CreatePartner(p inventory.Partner) (partnerID int64, err error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return 0, err
	}
	err = x.withTable(TablePartners, func(db *sqlx.DB) error {
		r, err := db.NamedExec(`
INSERT INTO partners (name, partner_type, rating, address, director_name, phone, email)
VALUES (:name, :partner_type, :rating, :address, :director_name, :phone, :email)`, p)
		if err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		if partnerID, err = getNewInsertedID(r); err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		return nil
	})
	return
}

// UpdatePartner overwrites all fields of the partner p.PartnerID.
func (x DB) UpdatePartner(p inventory.Partner) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	return x.withTable(TablePartners, func(db *sqlx.DB) error {
		r, err := db.NamedExec(`
UPDATE partners
SET name=:name,
    partner_type=:partner_type,
    rating=:rating,
    address=:address,
    director_name=:director_name,
    phone=:phone,
    email=:email
WHERE partner_id=:partner_id`, p)
		if err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		if n == 0 {
			return ErrNotFound.Here().Appendf("партнёр %d", p.PartnerID)
		}
		return nil
	})
}

// DeletePartner removes a partner that no sale refers to.
func (x DB) DeletePartner(partnerID int64) error {
	return x.withTable(TablePartners, func(db *sqlx.DB) error {
		var n int
		if err := db.Get(&n, `SELECT count(*) FROM sales WHERE partner_id = ?`, partnerID); err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		if n > 0 {
			return ErrPartnerInUse.Here().Appendf("партнёр %d: продаж %d", partnerID, n)
		}
		r, err := db.Exec(`DELETE FROM partners WHERE partner_id = ?`, partnerID)
		if err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		}
		if n, err := r.RowsAffected(); err != nil {
			return ErrDatabaseOperation.Here().WithCause(err)
		} else if n == 0 {
			return ErrNotFound.Here().Appendf("партнёр %d", partnerID)
		}
		return nil
	})
}
