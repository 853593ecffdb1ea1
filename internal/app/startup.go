package app

import (
	"github.com/fpawel/partners/internal/data"
	"github.com/fpawel/partners/internal/importer"
	"github.com/powerman/structlog"
)

type State int

const (
	Uninitialized State = iota
	SchemaCreated
	EmptyAwaitingImport
	Populated
)

func (x State) String() string {
	switch x {
	case Uninitialized:
		return "uninitialized"
	case SchemaCreated:
		return "schema_created"
	case EmptyAwaitingImport:
		return "empty_awaiting_import"
	case Populated:
		return "populated"
	}
	return "unknown"
}

type Startup struct {
	State  State
	Counts data.Counts
	// Import is nil when every table already had rows.
	Import *importer.Result
}

// Initialize creates the tables and imports the CSV files if any of the
// tables is empty. Tables that all contain rows are left untouched.
func Initialize(log *structlog.Logger, db data.DB, files importer.Files) (Startup, error) {
	var x Startup
	if err := db.CreateSchema(); err != nil {
		return x, err
	}
	x.State = SchemaCreated

	var err error
	if x.Counts, err = db.Counts(); err != nil {
		return x, err
	}
	log.Info("состояние базы данных", "file", db.Filename(),
		"partners", x.Counts.Partners, "products", x.Counts.Products, "sales", x.Counts.Sales)

	if !x.Counts.AnyEmpty() {
		log.Debug("все таблицы содержат данные, импорт не требуется")
		x.State = Populated
		return x, nil
	}

	x.State = EmptyAwaitingImport
	log.Info("одна или несколько таблиц пусты, импорт CSV")
	r, err := importer.Run(log, db, files)
	if err != nil {
		return x, err
	}
	x.Import = &r
	if x.Counts, err = db.Counts(); err != nil {
		return x, err
	}
	if x.Counts.AnyEmpty() {
		log.Warn("после импорта остались пустые таблицы",
			"partners", x.Counts.Partners, "products", x.Counts.Products, "sales", x.Counts.Sales)
		return x, nil
	}
	x.State = Populated
	return x, nil
}
