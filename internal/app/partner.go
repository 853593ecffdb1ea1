package app

import (
	"fmt"
	"github.com/fpawel/partners/internal/inventory"
	"github.com/powerman/must"
	"github.com/spf13/cobra"
)

type partnerFlags struct {
	name, partnerType, address, director, phone, email string
	rating                                             int64
}

func (f *partnerFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "наименование")
	fs.StringVar(&f.partnerType, "type", "", `тип партнёра, например "1 тип"`)
	fs.Int64Var(&f.rating, "rating", 0, "рейтинг, неотрицательное целое")
	fs.StringVar(&f.address, "address", "", "адрес")
	fs.StringVar(&f.director, "director", "", "ФИО директора")
	fs.StringVar(&f.phone, "phone", "", "телефон")
	fs.StringVar(&f.email, "email", "", "email")
}

// apply copies the flags given on the command line to p. A flag set to an
// empty string clears an optional field.
func (f partnerFlags) apply(cmd *cobra.Command, p *inventory.Partner) {
	changed := cmd.Flags().Changed
	if changed("name") {
		p.Name = f.name
	}
	if changed("type") {
		p.PartnerType = f.partnerType
	}
	if changed("rating") {
		p.Rating = f.rating
	}
	if changed("address") {
		p.Address = inventory.Optional(f.address)
	}
	if changed("director") {
		p.DirectorName = inventory.Optional(f.director)
	}
	if changed("phone") {
		p.Phone = inventory.Optional(f.phone)
	}
	if changed("email") {
		p.Email = inventory.Optional(f.email)
	}
}

func (x *cli) partnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partner",
		Short: "Партнёры",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Список партнёров",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := x.initialize(); err != nil {
				return err
			}
			partners, err := x.db.ListPartners()
			if err != nil {
				return err
			}
			printPartners(cmd.OutOrStdout(), partners)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Показать партнёра",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partnerID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := x.initialize(); err != nil {
				return err
			}
			p, err := x.db.GetPartner(partnerID)
			if err != nil {
				return err
			}
			printPartners(cmd.OutOrStdout(), []inventory.Partner{p})
			return nil
		},
	})

	var addFlags partnerFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Добавить партнёра",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := x.initialize(); err != nil {
				return err
			}
			var p inventory.Partner
			addFlags.apply(cmd, &p)
			partnerID, err := x.db.CreatePartner(p)
			if err != nil {
				return err
			}
			x.log.Info("партнёр добавлен", "partner_id", partnerID)
			fmt.Fprintln(cmd.OutOrStdout(), partnerID)
			return nil
		},
	}
	addFlags.bind(add)
	must.PanicIf(add.MarkFlagRequired("name"))
	must.PanicIf(add.MarkFlagRequired("type"))
	cmd.AddCommand(add)

	var editFlags partnerFlags
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Изменить партнёра; не указанные поля сохраняют прежние значения",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partnerID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := x.initialize(); err != nil {
				return err
			}
			p, err := x.db.GetPartner(partnerID)
			if err != nil {
				return err
			}
			editFlags.apply(cmd, &p)
			if err := x.db.UpdatePartner(p); err != nil {
				return err
			}
			x.log.Info("партнёр изменён", "partner_id", partnerID)
			printPartners(cmd.OutOrStdout(), []inventory.Partner{p})
			return nil
		},
	}
	editFlags.bind(edit)
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить партнёра, у которого нет продаж",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partnerID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := x.initialize(); err != nil {
				return err
			}
			if err := x.db.DeletePartner(partnerID); err != nil {
				return err
			}
			x.log.Info("партнёр удалён", "partner_id", partnerID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "exists <id>",
		Short: "Проверить, есть ли партнёр",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partnerID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := x.initialize(); err != nil {
				return err
			}
			exists, err := x.db.PartnerExists(partnerID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), exists)
			return nil
		},
	})
	return cmd
}
