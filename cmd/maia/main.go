// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/maia/api"
	"github.com/vechain/maia/health"
	"github.com/vechain/maia/log"
	"github.com/vechain/maia/metrics"
	"github.com/vechain/maia/node"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Maia",
		Usage:     "Multi-pool staking ledger",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			genesisFlag,
			configFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "dump-config",
				Usage:  "print the engine options as YAML, defaults merged with --config",
				Flags:  []cli.Flag{configFlag},
				Action: dumpConfigAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dumpConfigAction(ctx *cli.Context) error {
	opts, err := loadOptions(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	return dumpOptions(os.Stdout, opts)
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)

	opts, err := loadOptions(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	gene, err := selectGenesis(ctx, opts)
	if err != nil {
		return err
	}

	db, dataDir, err := openDB(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing ledger database..."); db.Close() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	h := health.New()
	n, err := node.New(db, gene, opts, node.SystemClock(), h)
	if err != nil {
		return errors.Wrap(err, "start node")
	}

	group, groupCtx := errgroup.WithContext(exitSignal)
	apiURL, stopAPI, err := startServer(group, ctx.String(apiAddrFlag.Name), api.New(n, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	}))
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, stopAdmin, err := api.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, h)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); stopAdmin() }()
		adminURL = url
	}

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		url, stopMetrics, err := startMetricsServer(group, ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); stopMetrics() }()
		metricsURL = url
	}

	printStartupMessage(gene, dataDir, apiURL, adminURL, metricsURL)

	<-groupCtx.Done()
	if err := context.Cause(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit for signal", "signal", sig)
		cancel()
	}()
	return ctx
}
