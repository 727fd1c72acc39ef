// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/heroes/internal/client"
	"github.com/taibuivan/heroes/internal/client/draft"
	redisstore "github.com/taibuivan/heroes/internal/platform/redis"
)

// defaultServer is used when neither --server nor HEROES_API_URL is set.
const defaultServer = "http://localhost:8080"

// app holds global flags and lazily built dependencies.
type app struct {
	server   string
	draftDir string
	redisURL string
	timeout  time.Duration
	verbose  bool

	out    io.Writer
	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	server := os.Getenv("HEROES_API_URL")
	if server == "" {
		server = defaultServer
	}

	root := &cobra.Command{
		Use:           "heroctl",
		Short:         "Browse and edit the superhero catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.server, "server", server, "API base URL (env HEROES_API_URL)")
	flags.StringVar(&a.draftDir, "draft-dir", "", "Directory of the create-form draft (default: user config dir)")
	flags.StringVar(&a.redisURL, "redis-url", "", "Keep the draft in Redis instead of a file")
	flags.DurationVar(&a.timeout, "timeout", 30*time.Second, "Request timeout")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.newListCmd(),
		a.newGetCmd(),
		a.newCreateCmd(),
		a.newEditCmd(),
		a.newDeleteCmd(),
		a.newDraftCmd(),
	)

	return root
}

// withTimeout returns a context bounded by --timeout.
func (a *app) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func (a *app) client() *client.Client {
	return client.New(a.server, &http.Client{Timeout: a.timeout})
}

// draftStore opens the configured draft backend. The returned func releases it.
func (a *app) draftStore(ctx context.Context) (draft.Store, func(), error) {
	if a.redisURL != "" {
		rdb, err := redisstore.NewClient(ctx, a.redisURL, a.logger)
		if err != nil {
			return nil, nil, err
		}
		return draft.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	}

	dir := a.draftDir
	if dir == "" {
		defaultDir, err := draft.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		dir = defaultDir
	}

	a.logger.Debug("draft_store_opened", slog.String("dir", dir))
	return draft.NewFileStore(dir), func() {}, nil
}

// heroID parses a positional id argument.
func heroID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, errInvalidID(arg)
	}
	return id, nil
}

type errInvalidID string

func (e errInvalidID) Error() string {
	return "invalid hero id " + strconv.Quote(string(e))
}
