// stylectl drives the recommendation and image orchestrators from the shell.
//
// Usage:
//
//	stylectl recommend --item hoodie --color red --style streetwear [--stream]
//	stylectl image --prompt "full body photo of ..."
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"stylo-server/modules/common/chat"
	"stylo-server/modules/common/config"
	"stylo-server/modules/common/logger"
	"stylo-server/modules/recommendation"
	"stylo-server/modules/submodule"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "stylectl",
		Usage:  "Stylo fashion recommendations and outfit renders from the command line",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetupWriter(os.Stderr, c.String("log-level"), "console")
			return nil
		},
		Commands: []*cli.Command{
			recommendCommand(),
			imageCommand(),
		},
	}
}

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Get a color palette, style inspirations and outfits for a clothing item",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "item", Usage: "Clothing item", Required: true},
			&cli.StringFlag{Name: "color", Usage: "Color of the item"},
			&cli.StringSliceFlag{Name: "style", Usage: "Style tag (repeatable)"},
			&cli.StringFlag{Name: "gender", Value: recommendation.DefaultGender, Usage: "men, women or any"},
			&cli.BoolFlag{Name: "stream", Usage: "Print raw model fragments as they arrive"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client, err := chat.FromConfig(c.Context, cfg)
			if err != nil {
				return err
			}
			svc := recommendation.NewService(client)

			in := recommendation.Input{
				ClothingItem: c.String("item"),
				Color:        c.String("color"),
				Style:        c.StringSlice("style"),
				Gender:       c.String("gender"),
			}

			if c.Bool("stream") {
				err := svc.Stream(c.Context, in, func(fragment string) error {
					_, err := fmt.Fprint(c.App.Writer, fragment)
					return err
				})
				fmt.Fprintln(c.App.Writer)
				return err
			}

			res, err := svc.Recommend(c.Context, in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}

func imageCommand() *cli.Command {
	return &cli.Command{
		Name:  "image",
		Usage: "Render an outfit image and print its URL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prompt", Usage: "Image prompt", Required: true},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			svc, err := submodule.NewImageService(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Context, cfg.ImageRequestTimeout)
			defer cancel()

			url, err := svc.Generate(ctx, c.String("prompt"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, url)
			return nil
		},
	}
}
