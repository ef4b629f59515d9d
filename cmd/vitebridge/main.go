// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Algomation-AI/vitebridge/modules/json"
	"github.com/Algomation-AI/vitebridge/modules/log"
	"github.com/Algomation-AI/vitebridge/modules/setting"
	"github.com/Algomation-AI/vitebridge/modules/vite"
	"github.com/Algomation-AI/vitebridge/routers/web"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(context.Background(), os.Args, os.Stdout, os.Stderr); err != nil {
		log.Error("[vitebridge] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return newApp(stdout, stderr).Run(ctx, args)
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "vitebridge",
		Usage:     "Resolve Vite entrypoints into HTML tags and asset URLs",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "INI configuration file"},
			&cli.StringFlag{Name: "build-dir", Usage: "override [vite] BUILD_DIRECTORY"},
			&cli.StringFlag{Name: "hot-file", Usage: "override [vite] HOT_FILE"},
			&cli.StringFlag{Name: "assets-url", Usage: "override [vite] ASSETS_URL"},
			&cli.StringFlag{Name: "log-level", Usage: "override [log] LEVEL"},
		},
		Before: loadSettings,
		Commands: []*cli.Command{
			cmdTags,
			cmdAsset,
			cmdManifest,
			cmdHot,
			cmdServe,
		},
	}
}

func loadSettings(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := setting.NewConfigProviderFromFile(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if err := setting.LoadSettingsFrom(cfg); err != nil {
		return ctx, err
	}

	if cmd.IsSet("build-dir") {
		setting.Vite.BuildDirectory = cmd.String("build-dir")
	}
	if cmd.IsSet("hot-file") {
		setting.Vite.HotFile = cmd.String("hot-file")
	}
	if cmd.IsSet("assets-url") {
		setting.Vite.AssetsURL = cmd.String("assets-url")
	}
	if cmd.IsSet("log-level") {
		setting.Log.Level = cmd.String("log-level")
	}
	log.Init(setting.Log.Level, setting.Log.Format, cmd.Root().ErrWriter)
	if cfg.File() != "" {
		log.Debug("loaded configuration from %s", cfg.File())
	}
	return ctx, nil
}

var cmdTags = &cli.Command{
	Name:      "tags",
	Usage:     "Print the tags needed to load entrypoints",
	ArgsUsage: "ENTRY...",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() == 0 {
			return errors.New("missing entrypoint name")
		}
		v, err := vite.NewFromSetting()
		if err != nil {
			return err
		}
		tags, err := v.GenerateEntryPointsTags(cmd.Args().Slice(), nil)
		if err != nil {
			return err
		}
		for _, tag := range tags.Strings() {
			if _, err := fmt.Fprintln(cmd.Root().Writer, tag); err != nil {
				return err
			}
		}
		return nil
	},
}

var cmdAsset = &cli.Command{
	Name:      "asset",
	Usage:     "Print the URL of a single asset",
	ArgsUsage: "PATH",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() != 1 {
			return errors.New("expected exactly one asset path")
		}
		v, err := vite.NewFromSetting()
		if err != nil {
			return err
		}
		url, err := v.AssetPath(cmd.Args().First())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.Root().Writer, url)
		return err
	},
}

var cmdManifest = &cli.Command{
	Name:  "manifest",
	Usage: "Print or check the build manifest",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "check", Usage: "validate chunk references instead of printing"},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		v, err := vite.NewFromSetting()
		if err != nil {
			return err
		}

		if cmd.Bool("check") {
			return checkManifest(cmd.Root().Writer, v)
		}

		manifest, err := v.Manifest()
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(manifest, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.Root().Writer, string(out))
		return err
	},
}

// checkManifest validates chunk references and that every emitted file is on disk.
func checkManifest(w io.Writer, v *vite.Vite) error {
	manifest, err := vite.ReadManifestFile(v.ManifestPath())
	if err != nil {
		return err
	}
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("%s: %w", v.ManifestPath(), err)
	}

	var total int64
	files := manifest.Files()
	for _, file := range files {
		fi, err := os.Stat(filepath.Join(v.BuildDirectory(), file))
		if err != nil {
			return fmt.Errorf("%s: emitted file %s: %w", v.ManifestPath(), file, err)
		}
		total += fi.Size()
	}
	_, err = fmt.Fprintf(w, "%s: %d chunks, %d entries, %d files (%s)\n",
		v.ManifestPath(), len(manifest), len(manifest.Entries()), len(files), humanize.IBytes(uint64(total)))
	return err
}

var cmdHot = &cli.Command{
	Name:      "hot",
	Usage:     "Write or remove the hot file",
	ArgsUsage: "[URL]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "clean", Usage: "remove the hot file"},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		path := setting.Vite.HotFile
		if cmd.Bool("clean") {
			return vite.CleanHotFile(path)
		}
		if cmd.NArg() != 1 {
			return errors.New("expected the dev server URL")
		}
		if err := vite.WriteHotFile(path, cmd.Args().First()); err != nil {
			return err
		}
		log.Info("wrote %s", path)
		return nil
	},
}

var cmdServe = &cli.Command{
	Name:  "serve",
	Usage: "Serve built assets and the inspection endpoints",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "addr", Usage: "override [server] HTTP_ADDR"},
		&cli.BoolFlag{Name: "watch-manifest", Usage: "drop the cached manifest whenever the build rewrites it"},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		v, err := vite.NewFromSetting()
		if err != nil {
			return err
		}
		addr := setting.Server.HTTPAddr
		if cmd.IsSet("addr") {
			addr = cmd.String("addr")
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              addr,
			Handler:           web.Routes(v),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info("listening on %s", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		if cmd.Bool("watch-manifest") && setting.Vite.CacheManifest {
			watcher, err := vite.NewManifestWatcher(v)
			if err != nil {
				log.Warn("manifest changes will not be picked up: %v", err)
			} else {
				g.Go(func() error { return watcher.Run(ctx) })
			}
		}
		return g.Wait()
	},
}
