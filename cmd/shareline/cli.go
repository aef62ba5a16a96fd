package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/catalog"
	"github.com/hpungsan/shareline/internal/config"
	"github.com/hpungsan/shareline/internal/errors"
	"github.com/hpungsan/shareline/internal/packet"
	"github.com/hpungsan/shareline/internal/resolver"
	"github.com/hpungsan/shareline/internal/share"
	"github.com/hpungsan/shareline/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(store *catalog.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "shareline",
		Usage:   "Case study share links that outlive the CMS",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(store, cfg),
			encodeCmd(cfg),
			decodeCmd(),
			resolveCmd(store, cfg),
			catalogCmd(store),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// newResolver builds the tiered resolver over the local catalog store.
func newResolver(store *catalog.Store, cfg *config.Config, log *zap.Logger) *resolver.Resolver {
	fallback := resolver.DefaultFallbackCatalog()
	if cfg.FallbackCatalogPath != "" {
		loaded, err := resolver.LoadFallbackCatalog(cfg.FallbackCatalogPath)
		if err != nil {
			log.Warn("fallback catalog unusable, using built-in",
				zap.String("path", cfg.FallbackCatalogPath), zap.Error(err))
		} else {
			fallback = loaded
		}
	}
	return resolver.New(store,
		resolver.WithLogger(log),
		resolver.WithFallback(fallback),
		resolver.WithVerboseDiagnostics(cfg.VerboseResolveDiagnostics),
	)
}

// serveCmd creates the serve command.
func serveCmd(store *catalog.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the share-link web server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("bind") {
				cfg.Bind = c.String("bind")
			}
			if c.IsSet("port") {
				cfg.Port = c.Int("port")
			}

			log, err := stderrLogger()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer log.Sync()

			res := newResolver(store, cfg, log)
			srv := web.NewServer(res, store, log, Version, cfg.Addr())
			return web.Run(srv, log)
		},
	}
}

// encodeCmd creates the encode command.
func encodeCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "Encode case studies (JSON array on stdin) into a payload blob and share URL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "for", Usage: "Recipient display name"},
			&cli.StringFlag{Name: "note", Usage: "Note rendered to the recipient"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("case studies must be piped via stdin as a JSON array"))
			}

			raw, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			var refs []casestudy.CaseStudyRef
			if err := json.Unmarshal([]byte(raw), &refs); err != nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid JSON input: %v", err)))
			}
			if len(refs) == 0 {
				return outputError(errors.NewInvalidRequest("input array is empty"))
			}
			if len(refs) > packet.MaxItems {
				return outputError(errors.NewPayloadTooLarge(packet.MaxItems, len(refs)))
			}

			blob := packet.Encode(refs)
			return outputJSON(map[string]any{
				"d":   blob,
				"url": share.BuildURL(cfg.PublicBaseURL, refs, c.String("for"), c.String("note")),
			})
		},
	}
}

// decodeCmd creates the decode command.
func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a payload blob back into case studies",
		ArgsUsage: "[blob]",
		Action: func(c *cli.Context) error {
			blob := c.Args().First()
			if blob == "" && stdinHasData() {
				var err error
				if blob, err = readStdin(); err != nil {
					return outputError(errors.NewInternal(err))
				}
			}
			if blob == "" {
				return outputError(errors.NewInvalidRequest("blob is required (argument or stdin)"))
			}

			items := packet.Decode(blob)
			if items == nil {
				return outputJSON(map[string]any{"ok": false, "projects": []casestudy.CaseStudyRef{}})
			}
			return outputJSON(map[string]any{"ok": true, "projects": packet.Rehydrate(items)})
		},
	}
}

// resolveCmd creates the resolve command.
func resolveCmd(store *catalog.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve comma-separated slugs the way an inbound share link would",
		ArgsUsage: "<slug[,slug...]>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "d", Usage: "Inline payload blob"},
			&cli.BoolFlag{Name: "verbose", Usage: "Log tier diagnostics to stderr"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("at least one slug is required"))
			}

			log := zap.NewNop()
			if c.Bool("verbose") {
				built, err := stderrLogger()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				defer built.Sync()
				log = built
			}

			query := url.Values{}
			if d := c.String("d"); d != "" {
				query.Set("d", d)
			}
			req := share.Parse(c.Args().First(), query)

			res := newResolver(store, cfg, log)
			pkt := res.Resolve(context.Background(), req.ResolverRequest())
			return outputJSON(pkt)
		},
	}
}

// catalogCmd creates the catalog command group.
func catalogCmd(store *catalog.Store) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Manage the local case study catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all case studies",
				Action: func(c *cli.Context) error {
					refs, err := store.ListAllProjects(c.Context)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"count": len(refs), "items": refs})
				},
			},
			{
				Name:  "import",
				Usage: "Import case studies (JSON array on stdin)",
				Action: func(c *cli.Context) error {
					if !stdinHasData() {
						return outputError(errors.NewInvalidRequest("case studies must be piped via stdin as a JSON array"))
					}
					result, err := store.Import(c.Context, os.Stdin)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(result)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a case study by slug",
				ArgsUsage: "<slug>",
				Action: func(c *cli.Context) error {
					slug := c.Args().First()
					if slug == "" {
						return outputError(errors.NewInvalidRequest("slug is required"))
					}
					if err := store.Delete(c.Context, slug); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"deleted": slug})
				},
			},
		},
	}
}

// outputJSON prints v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if shareErr, ok := err.(*errors.ShareError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", shareErr.Code, shareErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
