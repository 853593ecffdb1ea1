package importer

import (
	"encoding/csv"
	"github.com/ansel1/merry"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"os"
	"strconv"
	"strings"
)

var (
	partnerHeaders = []string{"name", "partner_type", "rating", "address", "director_name", "phone", "email"}
	productHeaders = []string{"name", "product_type_id", "param1", "param2"}
	saleHeaders    = []string{"partner_id", "product_id", "quantity", "sale_date"}
)

type csvFile struct {
	name   string
	file   *os.File
	r      *csv.Reader
	header []string
	index  map[string]int
}

// openCSV opens filename and checks that its header row has every one of
// the expected columns. It returns nil, nil when the file does not exist.
func openCSV(filename string, expected []string) (*csvFile, error) {
	file, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, merry.Wrap(err)
	}
	x := &csvFile{
		name: filename,
		file: file,
		// a UTF-8 byte order mark is dropped if present
		r: csv.NewReader(transform.NewReader(file, unicode.BOMOverride(unicode.UTF8.NewDecoder()))),
	}
	x.r.FieldsPerRecord = -1

	if x.header, err = x.r.Read(); err != nil {
		_ = file.Close()
		return nil, ErrHeaderMismatch.Here().WithCause(err).Appendf("%s: не удалось прочитать заголовок", filename)
	}
	x.index = make(map[string]int, len(x.header))
	var repeated []string
	for i, s := range x.header {
		x.header[i] = strings.TrimSpace(s)
		if _, ok := x.index[x.header[i]]; ok {
			repeated = append(repeated, x.header[i])
			continue
		}
		x.index[x.header[i]] = i
	}
	var missing, duplicated []string
	for _, s := range expected {
		if _, ok := x.index[s]; !ok {
			missing = append(missing, s)
		}
		for _, r := range repeated {
			if r == s {
				duplicated = append(duplicated, s)
				break
			}
		}
	}
	if len(missing) > 0 {
		_ = file.Close()
		return nil, ErrHeaderMismatch.Here().Appendf("%s: ожидались столбцы %v, найдены %v, нет %v",
			filename, expected, x.header, missing)
	}
	if len(duplicated) > 0 {
		_ = file.Close()
		return nil, ErrHeaderMismatch.Here().Appendf("%s: столбцы %v указаны более одного раза",
			filename, duplicated)
	}
	return x, nil
}

func (x *csvFile) Close() error {
	return x.file.Close()
}

// read returns the next data row and its line number in the file.
func (x *csvFile) read() (record, int, error) {
	values, err := x.r.Read()
	if err != nil {
		if e, ok := err.(*csv.ParseError); ok {
			return record{}, e.StartLine, err
		}
		return record{}, 0, err
	}
	line, _ := x.r.FieldPos(0)
	return record{values: values, index: x.index}, line, nil
}

type record struct {
	values []string
	index  map[string]int
}

// get returns the value of column, or "" for a column beyond a short row.
func (x record) get(column string) string {
	i, ok := x.index[column]
	if !ok || i >= len(x.values) {
		return ""
	}
	return x.values[i]
}

func (x record) asInt(column string) (int64, error) {
	s := x.get(column)
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrRowCoercion.Here().Appendf("%s=%q: ожидалось целое число", column, s)
	}
	return v, nil
}

func (x record) asFloat(column string) (float64, error) {
	s := x.get(column)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrRowCoercion.Here().Appendf("%s=%q: ожидалось число", column, s)
	}
	return v, nil
}

func (x record) String() string {
	return strings.Join(x.values, ",")
}
