// Copyright (c) 2014-2016 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hub/attachment"
	"github.com/bitmark-inc/hub/background"
	"github.com/bitmark-inc/hub/config"
	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/journal"
	"github.com/bitmark-inc/hub/ledger"
	"github.com/bitmark-inc/hub/nodecache"
	"github.com/bitmark-inc/hub/pow"
	"github.com/bitmark-inc/hub/store"
	"github.com/bitmark-inc/hub/tangle"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version %s\n", program, version)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: exactly one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	theConfiguration, err := config.Load(options["config-file"][0])
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, options["config-file"][0], err)
	}

	if err := fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault initialise error: %s", program, err)
	}
	defer fault.Finalise()

	if err := logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("configuration: %#v", theConfiguration)

	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	ctx := context.Background()

	log.Info("initialise ledger rpc client")
	rpcClient, err := ledger.DialRPCClient(ctx, theConfiguration.Ledger.RPCEndpoint)
	if nil != err {
		log.Criticalf("ledger rpc dial error: %s", err)
		exitwithstatus.Message("ledger rpc dial error: %s", err)
	}
	defer rpcClient.Close()

	log.Info("initialise ledger broadcaster")
	broadcaster, err := ledger.NewZMQBroadcaster(theConfiguration.Ledger.ZMQEndpoint)
	if nil != err {
		log.Criticalf("ledger zmq broadcaster error: %s", err)
		exitwithstatus.Message("ledger zmq broadcaster error: %s", err)
	}
	defer broadcaster.Close()

	nodeClient := ledger.NewNodeClient(rpcClient, broadcaster)
	defer nodeClient.Close()

	cachedClient := nodecache.New(
		nodeClient,
		time.Duration(theConfiguration.NodeCache.TTLSeconds)*time.Second,
		time.Duration(theConfiguration.NodeCache.CleanupSeconds)*time.Second,
	)

	log.Info("initialise journal")
	j, err := journal.Open(theConfiguration.Journal.Directory)
	if nil != err {
		log.Criticalf("journal open error: %s", err)
		exitwithstatus.Message("journal open error: %s", err)
	}
	defer j.Close()

	for _, entry := range j.All() {
		log.Warnf("sweep %s: in-flight reattachment (bundle %s) found at startup, will be rediscovered", entry.SweepID, entry.BundleHash)
	}

	log.Info("initialise database")
	db, err := sql.Open("pgx", theConfiguration.Database.DSN)
	if nil != err {
		log.Criticalf("database open error: %s", err)
		exitwithstatus.Message("database open error: %s", err)
	}
	defer db.Close()

	if err := store.Migrate(db); nil != err {
		log.Criticalf("database migrate error: %s", err)
		exitwithstatus.Message("database migrate error: %s", err)
	}

	pool, err := pgxpool.New(ctx, theConfiguration.Database.DSN)
	if nil != err {
		log.Criticalf("database pool error: %s", err)
		exitwithstatus.Message("database pool error: %s", err)
	}
	defer pool.Close()

	gateway := store.NewPostgresGateway(pool)

	provider := pow.NewLocalProvider(cachedClient, tangle.Sha3Digest, theConfiguration.MinimumWeightMagnitude, 0)

	controller := attachment.New(cachedClient, provider, gateway, tangle.Sha3Digest, j, attachment.Config{
		PromotionDepth:   theConfiguration.PromotionDepth,
		PromotionAddress: theConfiguration.PromotionAddress,
	})
	service := attachment.NewService(controller, theConfiguration.TickInterval())

	log.Info("starting background services")
	processes := background.Start(background.Processes{service}, nil)

	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)

	log.Info("shutting down…")
	processes.Stop()
}
