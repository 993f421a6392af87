package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/setanarut/hotspot"
	"github.com/setanarut/hotspot/utils"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print component and anchor coverage diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			d := seg.Diagnostics()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "size:       %dx%d\n", seg.Width(), seg.Height())
			fmt.Fprintf(out, "components: %d\n", d.Components)
			fmt.Fprintf(out, "unmapped:   %d\n", d.Unmapped)
			fmt.Fprintf(out, "area:       mean=%.1f stddev=%.1f median=%.0f max=%.0f\n",
				d.Area.Mean, d.Area.StdDev, d.Area.Median, d.Area.Max)
			if len(d.Conflicts) > 0 {
				fmt.Fprintf(out, "conflicts:  %v\n", d.Conflicts)
			}
			for _, it := range d.Items {
				fmt.Fprintf(out, "  %-20s components=%d pixels=%d\n", it.Key, it.Components, it.Pixels)
			}
			return nil
		},
	}
}

func newRenderCmd(app *App) *cobra.Command {
	var key, output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the frame shown while an item is active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			if key != "" {
				if _, ok := seg.Item(key); !ok {
					return errUnknownItem(key)
				}
			}
			return utils.SaveImage(hotspot.NewCompositor(seg).Render(key), output)
		},
	}
	cmd.Flags().StringVar(&key, "item", "", "Item key to highlight (empty renders the base image)")
	cmd.Flags().StringVarP(&output, "output", "o", "frame.png", "Output PNG path")
	return cmd
}

func newLocateCmd(app *App) *cobra.Command {
	var (
		x, y    float64
		rectStr string
	)
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Resolve a display coordinate to a component and item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			r, err := parseRect(rectStr, seg)
			if err != nil {
				return err
			}
			l := hotspot.Locate(x, y, r, seg.Labels())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "label: %d\n", l)
			if it, ok := seg.ItemForLabel(l); ok {
				fmt.Fprintf(out, "item:  %s (%s)\n", it.Key, it.Title)
			} else {
				fmt.Fprintln(out, "item:  -")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "Pointer X in display units")
	cmd.Flags().Float64Var(&y, "y", 0, "Pointer Y in display units")
	cmd.Flags().StringVar(&rectStr, "rect", "", "Surface rectangle LEFT,TOP,WIDTH,HEIGHT (default: image size at origin)")
	return cmd
}

func newLabelsCmd(app *App) *cobra.Command {
	var (
		output string
		byItem bool
	)
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Write a colour-coded component map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			img := hotspot.LabelImage(seg.Labels())
			if byItem {
				img = seg.OwnershipImage()
			}
			return utils.SaveImage(img, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "labels.png", "Output PNG path")
	cmd.Flags().BoolVar(&byItem, "by-item", false, "Colour components by owning item, unmapped in grey")
	return cmd
}

func newPaletteCmd(app *App) *cobra.Command {
	var (
		key, output, method string
		k, tile             int
	)
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Extract the overlay colours of an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := utils.ParsePaletteMethod(method)
			if !ok {
				return fmt.Errorf("--method: unknown palette method %q", method)
			}
			seg, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			if _, ok := seg.Item(key); !ok {
				return errUnknownItem(key)
			}
			p := utils.ItemPalette(seg, key, k, m)
			for _, c := range p {
				fmt.Fprintln(cmd.OutOrStdout(), c.Hex())
			}
			img, err := utils.PaletteImage(p, tile)
			if err != nil {
				return fmt.Errorf("item %q: %w", key, err)
			}
			return utils.SaveImage(img, output)
		},
	}
	cmd.Flags().StringVar(&key, "item", "", "Item key")
	cmd.Flags().IntVarP(&k, "colors", "k", 5, "Number of colours")
	cmd.Flags().StringVar(&method, "method", utils.PaletteMethodDominantColor.String(), "dominantcolor|kmeans")
	cmd.Flags().IntVar(&tile, "tile", 64, "Swatch size in pixels")
	cmd.Flags().StringVarP(&output, "output", "o", "palette.png", "Output PNG path")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

// parseRect parses "LEFT,TOP,WIDTH,HEIGHT". An empty string maps the
// surface one to one onto the image.
func parseRect(s string, seg *hotspot.Segmentation) (hotspot.Rect, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return hotspot.Rect{Width: float64(seg.Width()), Height: float64(seg.Height())}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return hotspot.Rect{}, fmt.Errorf("rect %q: want LEFT,TOP,WIDTH,HEIGHT", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return hotspot.Rect{}, fmt.Errorf("rect %q: %w", s, err)
		}
		v[i] = f
	}
	if v[2] <= 0 || v[3] <= 0 {
		return hotspot.Rect{}, fmt.Errorf("rect %q: width and height must be positive", s)
	}
	return hotspot.Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
}

type unknownItemError struct {
	key string
}

func (e unknownItemError) Error() string {
	return fmt.Sprintf("item not found: %s", e.key)
}

func errUnknownItem(key string) error {
	return unknownItemError{key: key}
}
