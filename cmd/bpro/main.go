package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Sosthene00/bitcoin-pro/config"
	"github.com/Sosthene00/bitcoin-pro/internal/core/application"
	dbbadger "github.com/Sosthene00/bitcoin-pro/internal/infrastructure/storage/db/badger"
	"github.com/Sosthene00/bitcoin-pro/pkg/explorer"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "bpro CLI"
	app.Usage = "Command line interface for tracking bitcoin keys, descriptors and their coins"
	app.Commands = append(
		app.Commands,
		&pubkeyAccount,
		&descriptorAccount,
		&utxo,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

// newAccountService wires the service on top of the on-disk registry. The
// explorer is optional, commands that never touch the chain pass nil and
// avoid the endpoint health check.
func newAccountService(
	explorerSvc explorer.Service,
) (application.AccountService, func(), error) {
	dbManager, err := dbbadger.NewDbManager(config.GetDbDir(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("opening account registry: %w", err)
	}

	service := application.NewAccountService(
		dbbadger.NewTrackingAccountRepositoryImpl(dbManager),
		dbbadger.NewDescriptorAccountRepositoryImpl(dbManager),
		dbbadger.NewUnspentRepositoryImpl(dbManager),
		explorerSvc,
		config.GetFloat(config.LookupLimitKey),
	)

	cleanup := func() {
		if err := dbManager.Close(); err != nil {
			log.WithError(err).Warn("closing account registry")
		}
	}
	return service, cleanup, nil
}

func printRespJSON(resp interface{}) {
	data, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(data))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[bpro] %v\n", err)
	os.Exit(1)
}
