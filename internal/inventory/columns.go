package inventory

// Columns are listed in table declaration order. Row returns values in the
// same order, NULL optional fields as nil.

type PartnerCol struct {
	Name string
	F    func(Partner) interface{}
}

type ProductCol struct {
	Name string
	F    func(Product) interface{}
}

type SaleCol struct {
	Name string
	F    func(PartnerSale) interface{}
}

var PartnerCols = []PartnerCol{
	{"ID", func(p Partner) interface{} { return p.PartnerID }},
	{"Наименование", func(p Partner) interface{} { return p.Name }},
	{"Тип", func(p Partner) interface{} { return p.PartnerType }},
	{"Рейтинг", func(p Partner) interface{} { return p.Rating }},
	{"Адрес", func(p Partner) interface{} { return optionalValue(p.Address) }},
	{"Директор", func(p Partner) interface{} { return optionalValue(p.DirectorName) }},
	{"Телефон", func(p Partner) interface{} { return optionalValue(p.Phone) }},
	{"Email", func(p Partner) interface{} { return optionalValue(p.Email) }},
}

var ProductCols = []ProductCol{
	{"ID", func(p Product) interface{} { return p.ProductID }},
	{"Наименование", func(p Product) interface{} { return p.Name }},
	{"Тип", func(p Product) interface{} { return p.ProductTypeID }},
	{"Параметр 1", func(p Product) interface{} { return p.Param1 }},
	{"Параметр 2", func(p Product) interface{} { return p.Param2 }},
}

var SaleCols = []SaleCol{
	{"ID", func(s PartnerSale) interface{} { return s.SaleID }},
	{"Партнёр", func(s PartnerSale) interface{} { return s.PartnerID }},
	{"Продукция", func(s PartnerSale) interface{} { return s.ProductID }},
	{"Наименование", func(s PartnerSale) interface{} { return s.ProductName }},
	{"Количество", func(s PartnerSale) interface{} { return s.Quantity }},
	{"Дата", func(s PartnerSale) interface{} { return s.SaleDate }},
}

func (p Partner) Row() []interface{} {
	xs := make([]interface{}, len(PartnerCols))
	for i, c := range PartnerCols {
		xs[i] = c.F(p)
	}
	return xs
}

func (p Product) Row() []interface{} {
	xs := make([]interface{}, len(ProductCols))
	for i, c := range ProductCols {
		xs[i] = c.F(p)
	}
	return xs
}

func (s PartnerSale) Row() []interface{} {
	xs := make([]interface{}, len(SaleCols))
	for i, c := range SaleCols {
		xs[i] = c.F(s)
	}
	return xs
}

func optionalValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
