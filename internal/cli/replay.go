package cli

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/setanarut/hotspot"
	"github.com/setanarut/hotspot/utils"
	"github.com/spf13/cobra"
)

func newReplayCmd(app *App) *cobra.Command {
	var (
		rectStr  string
		frameDir string
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Drive a session from pointer events read on stdin",
		Long: strings.TrimSpace(`
Reads one event per line:

  move X Y
  click X Y
  leave

and prints every presenter call (render, cursor, detail) on stdout.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			r, err := parseRect(rectStr, seg)
			if err != nil {
				return err
			}
			p := &linePresenter{out: cmd.OutOrStdout(), log: app.log, frameDir: frameDir}
			s := hotspot.NewSession(seg, p)
			return replay(cmd.InOrStdin(), s, r, app.log)
		},
	}
	cmd.Flags().StringVar(&rectStr, "rect", "", "Surface rectangle LEFT,TOP,WIDTH,HEIGHT (default: image size at origin)")
	cmd.Flags().StringVar(&frameDir, "frames", "", "Directory to write each rendered frame into")
	return cmd
}

type event struct {
	kind string
	x, y float64
}

func parseEvent(line string) (event, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return event{}, fmt.Errorf("empty event")
	}
	ev := event{kind: strings.ToLower(f[0])}
	switch ev.kind {
	case "leave":
		if len(f) != 1 {
			return event{}, fmt.Errorf("%q: leave takes no arguments", line)
		}
		return ev, nil
	case "move", "click":
		if len(f) != 3 {
			return event{}, fmt.Errorf("%q: want %s X Y", line, ev.kind)
		}
		var err error
		if ev.x, err = strconv.ParseFloat(f[1], 64); err != nil {
			return event{}, fmt.Errorf("%q: %w", line, err)
		}
		if ev.y, err = strconv.ParseFloat(f[2], 64); err != nil {
			return event{}, fmt.Errorf("%q: %w", line, err)
		}
		return ev, nil
	}
	return event{}, fmt.Errorf("%q: unknown event %q", line, f[0])
}

// replay feeds events to s. Malformed lines are logged and skipped so one
// typo does not end the session.
func replay(in io.Reader, s *hotspot.Session, r hotspot.Rect, log zerolog.Logger) error {
	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := parseEvent(line)
		if err != nil {
			log.Warn().Int("line", n).Err(err).Msg("skipping event")
			continue
		}
		switch ev.kind {
		case "move":
			s.Move(ev.x, ev.y, r)
		case "click":
			s.Click(ev.x, ev.y, r)
		case "leave":
			s.Leave()
		}
	}
	return sc.Err()
}

// linePresenter prints presenter calls one per line.
type linePresenter struct {
	out      io.Writer
	log      zerolog.Logger
	frameDir string
	frames   int
}

func (p *linePresenter) Render(img *image.NRGBA, active string) {
	p.frames++
	if active == "" {
		active = "-"
	}
	fmt.Fprintf(p.out, "render %s\n", active)
	if p.frameDir == "" {
		return
	}
	name := filepath.Join(p.frameDir, fmt.Sprintf("frame_%04d.png", p.frames))
	if err := utils.SaveImage(img, name); err != nil {
		p.log.Error().Err(err).Str("file", name).Msg("write frame")
	}
}

func (p *linePresenter) ShowDetail(d hotspot.Detail) {
	fmt.Fprintf(p.out, "detail %s %q %q\n", d.Key, d.Title, d.Message)
}

func (p *linePresenter) SetCursor(c hotspot.Cursor) {
	fmt.Fprintf(p.out, "cursor %s\n", c)
}
