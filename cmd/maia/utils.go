// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/maia/builtin/staking"
	"github.com/vechain/maia/genesis"
	"github.com/vechain/maia/log"
	"github.com/vechain/maia/lvldb"
	"github.com/vechain/maia/metrics"
)

func initLogger(ctx *cli.Context) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	format := log.FormatTerminal
	if ctx.Bool(jsonLogsFlag.Name) {
		format = log.FormatJSON
	}
	log.SetDefault(log.NewHandler(os.Stdout, format, &level, useColor(os.Stdout)))
	return &level
}

func useColor(f *os.File) bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func selectGenesis(ctx *cli.Context, opts staking.Options) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(opts), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis file")
	}
	defer file.Close()
	return parseGenesis(file, opts)
}

func parseGenesis(r io.Reader, opts staking.Options) (*genesis.Genesis, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var custom genesis.CustomGenesis
	if err := decoder.Decode(&custom); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return genesis.NewCustomNet(&custom, opts)
}

// openDB opens the ledger store of gene under the data dir, or an in-memory one.
func openDB(ctx *cli.Context, gene *genesis.Genesis) (*lvldb.LevelDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := lvldb.NewMem()
		return db, "Memory", err
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, "instance-"+gene.Name())
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return nil, "", errors.Wrapf(err, "create data dir [%v]", instanceDir)
	}

	cacheMB := ctx.Int(cacheFlag.Name)
	logger.Debug("cache size(MB)", "size", cacheMB)
	db, err := lvldb.New(filepath.Join(instanceDir, "ledger.db"), lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, "", errors.Wrap(err, "open ledger database")
	}
	return db, instanceDir, nil
}

// startServer serves handler on addr. Serve errors cancel the group.
func startServer(group *errgroup.Group, addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	group.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
	}, nil
}

func startMetricsServer(group *errgroup.Group, addr string) (string, func(), error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())

	url, stop, err := startServer(group, addr, handlers.CompressHandler(router))
	if err != nil {
		return "", nil, errors.WithMessage(err, "metrics")
	}
	return url + "metrics", stop, nil
}

func printStartupMessage(gene *genesis.Genesis, dataDir, apiURL, adminURL, metricsURL string) {
	info := fmt.Sprintf(`Starting %v
    Network     [ %v @%v ]
    Data dir    [ %v ]
    API portal  [ %v ]`,
		"Maia "+fullVersion(),
		gene.Name(), time.Unix(int64(gene.LaunchTime()), 0).UTC(),
		dataDir,
		apiURL)
	if adminURL != "" {
		info += fmt.Sprintf("\n    Admin       [ %v ]", adminURL)
	}
	if metricsURL != "" {
		info += fmt.Sprintf("\n    Metrics     [ %v ]", metricsURL)
	}
	if gene.Name() == "devnet" {
		info += "\n    Dev accounts"
		for i, a := range genesis.DevAccounts() {
			member := ""
			if i < genesis.DevMembers {
				member = " (member)"
			}
			info += fmt.Sprintf("\n      %v%v", a.Address, member)
		}
	}
	fmt.Println(info)
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.vechain.maia")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.maia")
		}
		return filepath.Join(home, ".org.vechain.maia")
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
