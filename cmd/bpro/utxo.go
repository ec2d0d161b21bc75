package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Sosthene00/bitcoin-pro/config"
	"github.com/Sosthene00/bitcoin-pro/pkg/lookup"
)

var utxo = cli.Command{
	Name:  "utxo",
	Usage: "resolve and inspect the coins of a descriptor account",
	Subcommands: []*cli.Command{
		{
			Name:  "resolve",
			Usage: "scan the chain index for the coins of a descriptor account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the descriptor account",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "mode",
					Usage: "the scan depth: all, first20 or first50",
				},
			},
			Action: utxoResolveAction,
		},
		{
			Name:  "list",
			Usage: "list the resolved coins of a descriptor account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the descriptor account",
					Required: true,
				},
			},
			Action: utxoListAction,
		},
		{
			Name:  "balance",
			Usage: "print the summed value of the resolved coins of a descriptor account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the descriptor account",
					Required: true,
				},
			},
			Action: utxoBalanceAction,
		},
	},
}

func utxoResolveAction(ctx *cli.Context) error {
	modeText := ctx.String("mode")
	if len(modeText) <= 0 {
		modeText = config.GetString(config.LookupModeKey)
	}
	mode, err := lookup.ParseMode(modeText)
	if err != nil {
		return err
	}

	explorerSvc, err := config.GetExplorer()
	if err != nil {
		return err
	}
	service, cleanup, err := newAccountService(explorerSvc)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := service.ResolveUnspents(ctx.Context, ctx.String("name"), mode)
	if err != nil {
		return err
	}

	printRespJSON(report)
	return nil
}

func utxoListAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	unspents, err := service.ListUnspents(ctx.Context, ctx.String("name"))
	if err != nil {
		return err
	}

	printRespJSON(unspents)
	return nil
}

func utxoBalanceAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	balance, err := service.GetBalance(ctx.Context, ctx.String("name"))
	if err != nil {
		return err
	}

	printRespJSON(map[string]uint64{"balance": balance})
	return nil
}
