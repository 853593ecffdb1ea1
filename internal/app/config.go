package app

import (
	"github.com/ansel1/merry"
	"github.com/caarlos0/env/v11"
	"github.com/fpawel/partners/internal/data"
	"github.com/fpawel/partners/internal/importer"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"github.com/powerman/structlog"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	DBFile       string `yaml:"db_file" toml:"db_file" env:"PARTNERS_DB_FILE" comment:"файл базы данных SQLite"`
	DBDriver     string `yaml:"db_driver" toml:"db_driver" env:"PARTNERS_DB_DRIVER" comment:"драйвер SQLite: sqlite3 (cgo) или sqlite (без cgo)"`
	ImportDir    string `yaml:"import_dir" toml:"import_dir" env:"PARTNERS_IMPORT_DIR" comment:"каталог файлов импорта"`
	PartnersFile string `yaml:"partners_file" toml:"partners_file" env:"PARTNERS_PARTNERS_FILE" comment:"файл импорта партнёров"`
	ProductsFile string `yaml:"products_file" toml:"products_file" env:"PARTNERS_PRODUCTS_FILE" comment:"файл импорта продукции"`
	SalesFile    string `yaml:"sales_file" toml:"sales_file" env:"PARTNERS_SALES_FILE" comment:"файл импорта продаж"`
	LogLevel     string `yaml:"log_level" toml:"log_level" env:"PARTNERS_LOG_LEVEL" comment:"уровень журнала: dbg, inf, wrn, err"`

	// relative paths are resolved against dir, the directory of the config file
	dir string
}

func defaultConfig() Config {
	return Config{
		DBFile:       "partners.db",
		DBDriver:     data.DriverCgo,
		ImportDir:    ".",
		PartnersFile: "partners.csv",
		ProductsFile: "products.csv",
		SalesFile:    "sales.csv",
		LogLevel:     "inf",
	}
}

func defaultConfigFileName() string {
	dir := filepath.Dir(os.Args[0])
	filename := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if _, err := os.Stat(filepath.Join(dir, "config.toml")); err == nil {
			return filepath.Join(dir, "config.toml")
		}
	}
	return filename
}

// openConfig reads filename, writing the defaults to it when it does not
// exist. A file that can not be parsed is reported and replaced by the
// defaults. Variables from the .env file next to filename and from the
// environment take precedence over the file.
func openConfig(log *structlog.Logger, filename string) (Config, error) {
	config := defaultConfig()
	config.dir = filepath.Dir(filename)

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if err := config.save(filename); err != nil {
			return config, err
		}
	}

	b, err := os.ReadFile(filename)
	if err != nil {
		return config, merry.Wrap(err)
	}
	if err := unmarshalConfig(filename, b, &config); err != nil {
		log.PrintErr(merry.Prepend(err, "config"), "file", filename)
		config = defaultConfig()
		config.dir = filepath.Dir(filename)
		if err := config.save(filename); err != nil {
			return config, err
		}
	}

	if err := godotenv.Load(filepath.Join(config.dir, ".env")); err != nil && !os.IsNotExist(err) {
		log.PrintErr(merry.Prepend(err, ".env"))
	}
	if err := env.Parse(&config); err != nil {
		return config, merry.Prepend(err, "переменные окружения")
	}
	return config, nil
}

func (c Config) save(filename string) error {
	b, err := marshalConfig(filename, c)
	if err != nil {
		return err
	}
	return merry.Wrap(os.WriteFile(filename, b, 0666))
}

func isToml(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

func marshalConfig(filename string, c Config) ([]byte, error) {
	if isToml(filename) {
		b, err := toml.Marshal(c)
		return b, merry.Wrap(err)
	}
	b, err := yaml.Marshal(c)
	return b, merry.Wrap(err)
}

func unmarshalConfig(filename string, b []byte, c *Config) error {
	if isToml(filename) {
		return merry.Wrap(toml.Unmarshal(b, c))
	}
	return merry.Wrap(yaml.Unmarshal(b, c))
}

func (c Config) path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.dir, name)
}

func (c Config) DB() data.DB {
	return data.New(c.path(c.DBFile), c.DBDriver)
}

func (c Config) ImportFiles() importer.Files {
	dir := c.path(c.ImportDir)
	file := func(name string) string {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dir, name)
	}
	return importer.Files{
		Partners: file(c.PartnersFile),
		Products: file(c.ProductsFile),
		Sales:    file(c.SalesFile),
	}
}
