package importer

import (
	"encoding/csv"
	"github.com/ansel1/merry"
	"github.com/fpawel/partners/internal/data"
	"github.com/fpawel/partners/internal/inventory"
	"github.com/jmoiron/sqlx"
	"github.com/powerman/structlog"
	"io"
	"strings"
)

var (
	ErrHeaderMismatch = merry.New("заголовок файла не соответствует ожидаемому")
	ErrRowCoercion    = merry.New("недопустимое значение поля")
	ErrReferential    = merry.New("ссылка на несуществующую запись")
)

// Files are the paths of the import files, one per table.
type Files struct {
	Partners string
	Products string
	Sales    string
}

type FileResult struct {
	File       string
	Found      bool
	Inserted   int
	Duplicates int
	Skipped    int
}

type Result struct {
	Partners FileResult
	Products FileResult
	Sales    FileResult
}

// Run imports partners, then products, then sales. Rows that can not be
// coerced, fail validation, refer to unknown partners or products, or are
// rejected by the database are logged and skipped. Rows equal to stored
// ones are skipped silently. The only error that stops the run is a file
// without the expected header, and all headers are checked before the first
// row is inserted.
func Run(log *structlog.Logger, db data.DB, files Files) (Result, error) {
	result := Result{
		Partners: FileResult{File: files.Partners},
		Products: FileResult{File: files.Products},
		Sales:    FileResult{File: files.Sales},
	}

	var opened []*csvFile
	defer func() {
		for _, f := range opened {
			log.ErrIfFail(f.Close)
		}
	}()
	open := func(filename string, headers []string, r *FileResult) (*csvFile, error) {
		f, err := openCSV(filename, headers)
		if err != nil {
			return nil, err
		}
		if f == nil {
			log.Warn("файл не найден", "file", filename)
			return nil, nil
		}
		r.Found = true
		opened = append(opened, f)
		return f, nil
	}

	fPartners, err := open(files.Partners, partnerHeaders, &result.Partners)
	if err != nil {
		return result, err
	}
	fProducts, err := open(files.Products, productHeaders, &result.Products)
	if err != nil {
		return result, err
	}
	fSales, err := open(files.Sales, saleHeaders, &result.Sales)
	if err != nil {
		return result, err
	}

	err = db.Session(func(conn *sqlx.DB) error {
		if fPartners != nil {
			importFile(log, fPartners, &result.Partners, func(r record) (bool, error) {
				p, err := parsePartner(r)
				if err != nil {
					return false, err
				}
				return data.InsertPartnerIfAbsent(conn, p)
			})
		}
		partnerIDs, err := data.PartnerIDs(conn)
		if err != nil {
			return err
		}

		if fProducts != nil {
			importFile(log, fProducts, &result.Products, func(r record) (bool, error) {
				p, err := parseProduct(r)
				if err != nil {
					return false, err
				}
				return data.InsertProductIfAbsent(conn, p)
			})
		}
		productIDs, err := data.ProductIDs(conn)
		if err != nil {
			return err
		}

		if fSales != nil {
			importFile(log, fSales, &result.Sales, func(r record) (bool, error) {
				s, err := parseSale(r)
				if err != nil {
					return false, err
				}
				if !partnerIDs.Has(s.PartnerID) {
					return false, ErrReferential.Here().Appendf("partner_id=%d", s.PartnerID)
				}
				if !productIDs.Has(s.ProductID) {
					return false, ErrReferential.Here().Appendf("product_id=%d", s.ProductID)
				}
				return data.InsertSaleIfAbsent(conn, s)
			})
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	log.Info("импорт завершён",
		"partners", result.Partners.Inserted,
		"products", result.Products.Inserted,
		"sales", result.Sales.Inserted)
	return result, nil
}

func importFile(log *structlog.Logger, f *csvFile, result *FileResult, insert func(record) (bool, error)) {
	log = logPrependSuffixKeys(log, "file", f.name)
	for {
		r, line, err := f.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				result.Skipped++
				log.Warn("пропуск строки", "line", line, "reason", err)
				continue
			}
			log.PrintErr(merry.Append(err, "чтение прервано"))
			break
		}
		inserted, err := insert(r)
		switch {
		case err == nil && inserted:
			result.Inserted++
		case err == nil:
			result.Duplicates++
		case merry.Is(err, data.ErrDatabaseOperation):
			result.Skipped++
			log.PrintErr(err, "line", line, "row", r)
		default:
			result.Skipped++
			log.Warn("пропуск строки", "line", line, "row", r, "reason", err)
		}
	}
	log.Info("импортировано", "inserted", result.Inserted,
		"duplicates", result.Duplicates, "skipped", result.Skipped)
}

func parsePartner(r record) (p inventory.Partner, err error) {
	if p.Rating, err = r.asInt("rating"); err != nil {
		return
	}
	p.Name = r.get("name")
	p.PartnerType = r.get("partner_type")
	p.Address = inventory.Optional(r.get("address"))
	p.DirectorName = inventory.Optional(r.get("director_name"))
	p.Phone = inventory.Optional(r.get("phone"))
	p.Email = inventory.Optional(r.get("email"))
	p.Normalize()
	err = p.Validate()
	return
}

func parseProduct(r record) (p inventory.Product, err error) {
	if p.ProductTypeID, err = r.asInt("product_type_id"); err != nil {
		return
	}
	if p.Param1, err = r.asFloat("param1"); err != nil {
		return
	}
	if p.Param2, err = r.asFloat("param2"); err != nil {
		return
	}
	p.Name = strings.TrimSpace(r.get("name"))
	err = p.Validate()
	return
}

func parseSale(r record) (s inventory.Sale, err error) {
	if s.PartnerID, err = r.asInt("partner_id"); err != nil {
		return
	}
	if s.ProductID, err = r.asInt("product_id"); err != nil {
		return
	}
	if s.Quantity, err = r.asInt("quantity"); err != nil {
		return
	}
	s.SaleDate = strings.TrimSpace(r.get("sale_date"))
	err = s.Validate()
	return
}

func logPrependSuffixKeys(log *structlog.Logger, args ...interface{}) *structlog.Logger {
	var keys []string
	for i, arg := range args {
		if i%2 == 0 {
			k, ok := arg.(string)
			if !ok {
				panic("key must be string")
			}
			keys = append(keys, k)
		}
	}
	return log.New(args...).PrependSuffixKeys(keys...)
}
