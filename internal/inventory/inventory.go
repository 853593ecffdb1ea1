package inventory

import (
	"github.com/ansel1/merry"
	"math"
	"strings"
)

var ErrInvalid = merry.New("invalid field value")

type Partner struct {
	PartnerID    int64   `db:"partner_id" yaml:"partner_id"`
	Name         string  `db:"name" yaml:"name"`
	PartnerType  string  `db:"partner_type" yaml:"partner_type"`
	Rating       int64   `db:"rating" yaml:"rating"`
	Address      *string `db:"address" yaml:"address"`
	DirectorName *string `db:"director_name" yaml:"director_name"`
	Phone        *string `db:"phone" yaml:"phone"`
	Email        *string `db:"email" yaml:"email"`
}

type Product struct {
	ProductID     int64   `db:"product_id" yaml:"product_id"`
	Name          string  `db:"name" yaml:"name"`
	ProductTypeID int64   `db:"product_type_id" yaml:"product_type_id"`
	Param1        float64 `db:"param1" yaml:"param1"`
	Param2        float64 `db:"param2" yaml:"param2"`
}

type Sale struct {
	SaleID    int64  `db:"sale_id" yaml:"sale_id"`
	PartnerID int64  `db:"partner_id" yaml:"partner_id"`
	ProductID int64  `db:"product_id" yaml:"product_id"`
	Quantity  int64  `db:"quantity" yaml:"quantity"`
	SaleDate  string `db:"sale_date" yaml:"sale_date"`
}

// PartnerSale is a sale row of one partner's history with the product name resolved.
type PartnerSale struct {
	Sale
	ProductName string `db:"product_name" yaml:"product_name"`
}

// Optional returns nil for a blank string, so that empty form fields and
// empty CSV cells are stored as NULL.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Text is the inverse of Optional.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (p *Partner) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.PartnerType = strings.TrimSpace(p.PartnerType)
	p.Address = Optional(Text(p.Address))
	p.DirectorName = Optional(Text(p.DirectorName))
	p.Phone = Optional(Text(p.Phone))
	p.Email = Optional(Text(p.Email))
}

func (p Partner) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalid.Here().Append("наименование партнёра не задано")
	}
	if strings.TrimSpace(p.PartnerType) == "" {
		return ErrInvalid.Here().Append("тип партнёра не задан")
	}
	if p.Rating < 0 {
		return ErrInvalid.Here().Appendf("рейтинг не может быть отрицательным: %d", p.Rating)
	}
	return nil
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalid.Here().Append("наименование продукции не задано")
	}
	if !positive(p.Param1) {
		return ErrInvalid.Here().Appendf("param1 должен быть больше нуля: %v", p.Param1)
	}
	if !positive(p.Param2) {
		return ErrInvalid.Here().Appendf("param2 должен быть больше нуля: %v", p.Param2)
	}
	return nil
}

func (s Sale) Validate() error {
	if s.Quantity <= 0 {
		return ErrInvalid.Here().Appendf("количество должно быть больше нуля: %d", s.Quantity)
	}
	if strings.TrimSpace(s.SaleDate) == "" {
		return ErrInvalid.Here().Append("дата продажи не задана")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
