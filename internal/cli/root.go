package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/setanarut/hotspot"
	"github.com/setanarut/hotspot/utils"
	"github.com/spf13/cobra"
)

type App struct {
	Base     string
	Overlay  string
	Catalog  string
	LogLevel string

	log zerolog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "hotspot",
		Short:        "Segment an image pair into clickable catalog items",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # How well do the catalog anchors cover the drawing?
  hotspot inspect --base map.png --overlay map-color.png --catalog items.yaml

  # Frame shown while hovering an item
  hotspot render --item lamp -o lamp.png

  # Drive a session from scripted pointer events
  printf 'move 120 80\nclick 120 80\nleave\n' | hotspot replay --rect 0,0,640,480
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl, err := zerolog.ParseLevel(app.LogLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		app.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(lvl).
			With().
			Timestamp().
			Logger()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Base, "base", envOr("HOTSPOT_BASE", "base.png"), "Greyscale base image (path or http(s) URL)")
	cmd.PersistentFlags().StringVar(&app.Overlay, "overlay", envOr("HOTSPOT_OVERLAY", "overlay.png"), "Colour overlay image, same size as base")
	cmd.PersistentFlags().StringVar(&app.Catalog, "catalog", envOr("HOTSPOT_CATALOG", "items.yaml"), "Item catalog (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("HOTSPOT_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInspectCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newLocateCmd(app))
	cmd.AddCommand(newLabelsCmd(app))
	cmd.AddCommand(newPaletteCmd(app))
	cmd.AddCommand(newReplayCmd(app))

	return cmd
}

// load fetches both images and the catalog and segments them. Any failure
// is fatal for the command.
func (app *App) load(ctx context.Context) (*hotspot.Segmentation, error) {
	base, overlay, err := utils.LoadPair(ctx, app.Base, app.Overlay)
	if err != nil {
		return nil, err
	}
	cat, err := utils.LoadCatalog(app.Catalog)
	if err != nil {
		return nil, err
	}
	opt := hotspot.DefaultOptions()
	opt.Logger = app.log
	return hotspot.NewSegmentation(base, overlay, cat, opt)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
