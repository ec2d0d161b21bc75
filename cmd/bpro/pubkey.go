package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
)

var pubkeyAccount = cli.Command{
	Name:  "pubkey",
	Usage: "manage the registry of tracked keys",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "track a public key or an extended key recipe under a name",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the tracking account",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "pubkey",
					Usage: "a fixed public key in hex, compressed or uncompressed",
				},
				&cli.StringFlag{
					Name:  "path",
					Usage: "the derivation path of an extended key recipe, eg m/84'/0'/0'/0",
				},
				&cli.StringFlag{
					Name:  "master",
					Usage: "the master extended key, public or private",
				},
				&cli.StringFlag{
					Name:  "account-key",
					Usage: "the account-level xpub, required when master is an xpub and the path crosses a hardened step",
				},
				&cli.StringFlag{
					Name:  "ranges",
					Usage: "the derivation index ranges, eg 0-19 or 0,5,10-20",
				},
			},
			Action: pubkeyAddAction,
		},
		{
			Name:   "list",
			Usage:  "list all tracked keys",
			Action: pubkeyListAction,
		},
		{
			Name:  "remove",
			Usage: "remove a tracked key by name",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the tracking account",
					Required: true,
				},
			},
			Action: pubkeyRemoveAction,
		},
	},
}

func pubkeyAddAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	account, err := service.AddTrackingAccount(
		ctx.Context,
		ctx.String("name"),
		domain.KeyRecipe{
			PubkeyHex:      ctx.String("pubkey"),
			DerivationPath: ctx.String("path"),
			MasterKey:      ctx.String("master"),
			AccountKey:     ctx.String("account-key"),
			IndexRanges:    ctx.String("ranges"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(account)
	return nil
}

func pubkeyListAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := service.ListTrackingAccounts(ctx.Context)
	if err != nil {
		return err
	}

	type view struct {
		ID       string
		Name     string
		Identity string
	}
	views := make([]view, 0, len(accounts))
	for _, account := range accounts {
		key, err := account.SingleSig()
		if err != nil {
			return err
		}
		views = append(views, view{
			ID:       account.ID.String(),
			Name:     account.Name,
			Identity: key.String(),
		})
	}

	printRespJSON(views)
	return nil
}

func pubkeyRemoveAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	return service.RemoveTrackingAccount(ctx.Context, ctx.String("name"))
}
