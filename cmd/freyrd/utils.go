// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/common"
	isatty "github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/freyrlabs/freyr/log"
	"github.com/freyrlabs/freyr/node"
	"github.com/freyrlabs/freyr/pool/campaign"
)

func fatal(args ...interface{}) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// initLogger sets up the process-wide logger and returns the level var so
// the admin server can adjust it at runtime.
func initLogger(ctx *cli.Context) *slog.LevelVar {
	logLevel := log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name)))

	var level slog.LevelVar
	level.Set(logLevel)

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd())
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))

	return &level
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.freyrlabs.freyr")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.freyrlabs.freyr")
		} else {
			return filepath.Join(home, ".org.freyrlabs.freyr")
		}
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

func printStartupMessage(
	cfg *campaign.Config,
	summary *node.Summary,
	instanceDir string,
	apiURL string,
) {
	fmt.Printf(`Starting %v
    Campaign     [ %v budget %v ]
    Window       [ %v ~ %v ]
    Lock-in      [ %v days ]
    Staked       [ %v by %v stakers ]
    Instance dir [ %v ]
    API portal   [ %v ]
`,
		common.MakeName("Freyr", fullVersion()),
		cfg.Asset, cfg.Budget,
		time.Unix(int64(cfg.StartTime), 0), time.Unix(int64(cfg.EndTime()), 0),
		cfg.LockinDays,
		summary.TotalStaked, summary.ActiveCount,
		instanceDir,
		apiURL)
}
