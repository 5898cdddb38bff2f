// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/freyrlabs/freyr/api"
	"github.com/freyrlabs/freyr/cmd/freyrd/httpserver"
	"github.com/freyrlabs/freyr/log"
	"github.com/freyrlabs/freyr/metrics"
	"github.com/freyrlabs/freyr/node"
)

var (
	version   string
	gitCommit string
	gitTag    string
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
		Name:      "Freyr",
		Usage:     "Node of the Freyr staking reward pool",
		Copyright: "2025 Freyr Labs",
		Flags: []cli.Flag{
			manifestFlag,
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			pprofFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	exitCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logLevel := initLogger(ctx)

	cfg, allocs := loadManifest(ctx)
	instanceDir := makeInstanceDir(ctx, cfg)

	mainDB := openMainDB(ctx, instanceDir)
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	eventDB := openEventDB(instanceDir)
	defer func() { log.Info("closing event database..."); eventDB.Close() }()

	n := node.New(mainDB, eventDB, nil)
	if err := n.Setup(cfg, allocs); err != nil {
		fatal(fmt.Sprintf("set up pool: %v", err))
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			fatal(fmt.Sprintf("unable to start metrics server - %v", err))
		}
		log.Info("metrics server started", "url", url)
		defer closeFunc()
	}

	logAPIRequests := new(atomic.Bool)
	logAPIRequests.Store(ctx.Bool(enableAPILogsFlag.Name))

	apiHandler, apiCloser := api.New(n, logAPIRequests, api.Options{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		LogsLimit:      ctx.Uint64(apiLogsLimitFlag.Name),
		PprofOn:        ctx.Bool(pprofFlag.Name),
		EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
	})
	defer apiCloser()

	apiURL, srvCloser, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		apiHandler,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		fatal(fmt.Sprintf("unable to start API server - %v", err))
	}
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := api.NewAdmin(ctx.String(adminAddrFlag.Name), logLevel, logAPIRequests).Start()
		if err != nil {
			fatal(fmt.Sprintf("unable to start admin server - %v", err))
		}
		log.Info("admin server started", "url", url)
		defer func() { log.Info("stopping admin server..."); closeFunc() }()
	}

	go node.CheckClockOffset()

	summary, err := n.Summary()
	if err != nil {
		fatal(fmt.Sprintf("read pool summary: %v", err))
	}
	printStartupMessage(cfg, summary, instanceDir, apiURL)

	g, runCtx := errgroup.WithContext(exitCtx)
	g.Go(func() error { return n.Run(runCtx) })
	return g.Wait()
}
