package inventory

import (
	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestPartnerValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		p    Partner
		ok   bool
	}{
		{"valid", Partner{Name: "Acme", PartnerType: "1 тип", Rating: 5}, true},
		{"zero rating", Partner{Name: "Acme", PartnerType: "1 тип"}, true},
		{"blank name", Partner{Name: "  ", PartnerType: "1 тип", Rating: 1}, false},
		{"blank type", Partner{Name: "Acme", Rating: 1}, false},
		{"negative rating", Partner{Name: "Acme", PartnerType: "1 тип", Rating: -1}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, merry.Is(err, ErrInvalid))
		})
	}
}

func TestProductValidate(t *testing.T) {
	assert.NoError(t, Product{Name: "Ламинат", Param1: 1.5, Param2: 0.1}.Validate())
	assert.Error(t, Product{Name: "", Param1: 1, Param2: 1}.Validate())
	assert.Error(t, Product{Name: "x", Param1: 0, Param2: 1}.Validate())
	assert.Error(t, Product{Name: "x", Param1: 1, Param2: -2}.Validate())
	assert.Error(t, Product{Name: "x", Param1: math.NaN(), Param2: 1}.Validate())
	assert.Error(t, Product{Name: "x", Param1: 1, Param2: math.Inf(1)}.Validate())
}

func TestSaleValidate(t *testing.T) {
	assert.NoError(t, Sale{PartnerID: 1, ProductID: 1, Quantity: 3, SaleDate: "2024-01-02"}.Validate())
	assert.Error(t, Sale{Quantity: 0, SaleDate: "2024-01-02"}.Validate())
	assert.Error(t, Sale{Quantity: 1, SaleDate: " "}.Validate())
}

func TestPartnerNormalize(t *testing.T) {
	p := Partner{
		Name:        " Acme ",
		PartnerType: "1 тип",
		Address:     Optional("  "),
		Email:       Optional(" a@b.c "),
	}
	p.Normalize()
	assert.Equal(t, "Acme", p.Name)
	assert.Nil(t, p.Address)
	assert.Nil(t, p.Phone)
	require.NotNil(t, p.Email)
	assert.Equal(t, "a@b.c", *p.Email)
}

func TestPartnerRow(t *testing.T) {
	p := Partner{PartnerID: 7, Name: "Acme", PartnerType: "1 тип", Rating: 5, Phone: Optional("123")}
	assert.Equal(t, []interface{}{int64(7), "Acme", "1 тип", int64(5), nil, nil, "123", nil}, p.Row())
}
