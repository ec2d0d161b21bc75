package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/Sosthene00/bitcoin-pro/internal/core/application"
	"github.com/Sosthene00/bitcoin-pro/internal/core/domain"
	"github.com/Sosthene00/bitcoin-pro/pkg/descriptor"
)

var descriptorAccount = cli.Command{
	Name:  "descriptor",
	Usage: "manage descriptor accounts and generate their scripts",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "create a descriptor account from tracked keys or a raw script",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the descriptor account",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "type",
					Usage:    "the template type: singlesig, multisig or scripted",
					Required: true,
				},
				&cli.StringSliceFlag{
					Name:  "key",
					Usage: "the name of a tracked key, repeatable for multisig",
				},
				&cli.IntFlag{
					Name:  "threshold",
					Usage: "the number of required signers of a multisig template",
				},
				&cli.BoolFlag{
					Name:  "reorder",
					Usage: "sort multisig keys canonically before script assembly",
				},
				&cli.StringFlag{
					Name:  "script",
					Usage: "the source text of a scripted template",
				},
				&cli.StringFlag{
					Name:  "script-type",
					Usage: "the grammar of the script source, eg hex",
				},
				&cli.StringFlag{
					Name:  "variants",
					Usage: "comma-separated script variants: bare,hashed,nested,segwit,taproot",
					Value: "segwit",
				},
			},
			Action: descriptorAddAction,
		},
		{
			Name:   "list",
			Usage:  "list all descriptor accounts",
			Action: descriptorListAction,
		},
		{
			Name:  "remove",
			Usage: "remove a descriptor account and its resolved coins",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the descriptor account",
					Required: true,
				},
			},
			Action: descriptorRemoveAction,
		},
		{
			Name:  "scripts",
			Usage: "generate the scripts of a descriptor account at an index",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the descriptor account",
					Required: true,
				},
				&cli.UintFlag{
					Name:  "index",
					Usage: "the derivation index to generate at",
				},
			},
			Action: descriptorScriptsAction,
		},
	},
}

func descriptorAddAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	keys, err := resolveKeyRecipes(ctx, service)
	if err != nil {
		return err
	}
	variants, err := parseVariants(ctx.String("variants"))
	if err != nil {
		return err
	}

	account, err := service.AddDescriptorAccount(
		ctx.Context,
		domain.DescriptorAccountOpts{
			Name:         ctx.String("name"),
			TemplateType: ctx.String("type"),
			Keys:         keys,
			Threshold:    ctx.Int("threshold"),
			Reorder:      ctx.Bool("reorder"),
			ScriptSource: ctx.String("script"),
			ScriptType:   ctx.String("script-type"),
			Variants:     variants,
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(account)
	return nil
}

func descriptorListAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := service.ListDescriptorAccounts(ctx.Context)
	if err != nil {
		return err
	}

	type view struct {
		ID         string
		Name       string
		Descriptor string
	}
	views := make([]view, 0, len(accounts))
	for _, account := range accounts {
		generator, err := account.Generator()
		if err != nil {
			return err
		}
		views = append(views, view{
			ID:         account.ID.String(),
			Name:       account.Name,
			Descriptor: generator.String(),
		})
	}

	printRespJSON(views)
	return nil
}

func descriptorRemoveAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	return service.RemoveDescriptorAccount(ctx.Context, ctx.String("name"))
}

func descriptorScriptsAction(ctx *cli.Context) error {
	service, cleanup, err := newAccountService(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	scripts, err := service.GenerateScripts(
		ctx.Context, ctx.String("name"), uint32(ctx.Uint("index")),
	)
	if err != nil {
		return err
	}

	view := make(map[string]string, len(scripts))
	for _, script := range scripts {
		view[string(script.Variant)] = hex.EncodeToString(script.Script)
	}
	printRespJSON(view)
	return nil
}

func resolveKeyRecipes(
	ctx *cli.Context, service application.AccountService,
) ([]domain.KeyRecipe, error) {
	names := ctx.StringSlice("key")
	if len(names) <= 0 {
		return nil, nil
	}

	accounts, err := service.ListTrackingAccounts(ctx.Context)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]domain.KeyRecipe, len(accounts))
	for _, tracked := range accounts {
		byName[tracked.Name] = tracked.Key
	}

	recipes := make([]domain.KeyRecipe, 0, len(names))
	for _, name := range names {
		recipe, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("tracked key %q not found", name)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func parseVariants(text string) (descriptor.Variants, error) {
	variants := descriptor.Variants{}
	for _, name := range strings.Split(text, ",") {
		switch descriptor.Variant(strings.TrimSpace(name)) {
		case descriptor.VariantBare:
			variants.Bare = true
		case descriptor.VariantHashed:
			variants.Hashed = true
		case descriptor.VariantNested:
			variants.Nested = true
		case descriptor.VariantSegwit:
			variants.Segwit = true
		case descriptor.VariantTaproot:
			variants.Taproot = true
		default:
			return descriptor.Variants{}, fmt.Errorf(
				"unknown script variant %q", strings.TrimSpace(name),
			)
		}
	}
	return variants, nil
}
