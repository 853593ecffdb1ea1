package app

import (
	"github.com/ansel1/merry"
	"github.com/fpawel/partners/internal/data"
	"github.com/fpawel/partners/internal/importer"
	"github.com/powerman/structlog"
	"github.com/spf13/cobra"
	"os"
	"strconv"
)

func Main() {
	if err := NewRootCmd().Execute(); err != nil {
		structlog.New().PrintErr(err)
		os.Exit(1)
	}
}

// cli is the state shared by the commands of one invocation.
type cli struct {
	configFile string
	config     Config
	log        *structlog.Logger
	db         data.DB
}

func NewRootCmd() *cobra.Command {
	x := new(cli)
	root := &cobra.Command{
		Use:           "partners",
		Short:         "Учёт партнёров, продукции и продаж",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return x.open()
		},
	}
	root.PersistentFlags().StringVar(&x.configFile, "config", "", "файл конфигурации (.yaml или .toml)")

	root.AddCommand(
		x.initCmd(),
		x.importCmd(),
		x.partnerCmd(),
		x.productCmd(),
		x.saleCmd(),
	)
	return root
}

func (x *cli) open() error {
	if x.configFile == "" {
		x.configFile = defaultConfigFileName()
	}
	config, err := openConfig(structlog.New(), x.configFile)
	if err != nil {
		return err
	}
	x.config = config
	setLogLevel(config.LogLevel)
	x.log = structlog.New()
	x.db = config.DB()
	return nil
}

// initialize is run by every command before it touches the data.
func (x *cli) initialize() (Startup, error) {
	return Initialize(x.log, x.db, x.config.ImportFiles())
}

func (x *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Создать таблицы и импортировать CSV, если есть пустые таблицы",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := x.initialize()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printCounts(w, s.State, s.Counts)
			if s.Import != nil {
				printImportResult(w, *s.Import)
			}
			return nil
		},
	}
}

func (x *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Импортировать CSV независимо от заполненности таблиц",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := x.db.CreateSchema(); err != nil {
				return err
			}
			r, err := importer.Run(x.log, x.db, x.config.ImportFiles())
			if err != nil {
				return err
			}
			printImportResult(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func (x *cli) productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Продукция",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Список продукции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := x.initialize(); err != nil {
				return err
			}
			products, err := x.db.ListProducts()
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), products)
			return nil
		},
	})
	return cmd
}

func (x *cli) saleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Продажи",
	}
	var partnerID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "Список продаж, или история продаж партнёра с --partner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := x.initialize(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("partner") {
				sales, err := x.db.ListSales()
				if err != nil {
					return err
				}
				printSales(cmd.OutOrStdout(), sales)
				return nil
			}
			exists, err := x.db.PartnerExists(partnerID)
			if err != nil {
				return err
			}
			if !exists {
				return data.ErrNotFound.Here().Appendf("партнёр %d", partnerID)
			}
			sales, err := x.db.ListPartnerSales(partnerID)
			if err != nil {
				return err
			}
			printSales(cmd.OutOrStdout(), sales)
			return nil
		},
	}
	list.Flags().Int64Var(&partnerID, "partner", 0, "идентификатор партнёра")
	cmd.AddCommand(list)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, merry.Errorf("неверный идентификатор: %q", s)
	}
	return id, nil
}
