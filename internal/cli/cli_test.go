package cli

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/setanarut/hotspot"
	"github.com/setanarut/hotspot/utils"
)

// workspace writes a 10×4 image pair and a catalog:
// "a" owns the square at x 1..2, "b" the square at x 6..7.
func workspace(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()

	base := image.NewNRGBA(image.Rect(0, 0, 10, 4))
	overlay := image.NewNRGBA(image.Rect(0, 0, 10, 4))
	for y := range 4 {
		for x := range 10 {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if y >= 1 && y <= 2 && (x == 1 || x == 2 || x == 6 || x == 7) {
				c = color.NRGBA{A: 255}
			}
			base.SetNRGBA(x, y, c)
			overlay.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	basePath := filepath.Join(dir, "base.png")
	overlayPath := filepath.Join(dir, "overlay.png")
	if err := utils.SaveImage(base, basePath); err != nil {
		t.Fatal(err)
	}
	if err := utils.SaveImage(overlay, overlayPath); err != nil {
		t.Fatal(err)
	}
	catPath := filepath.Join(dir, "items.yaml")
	cat := `
items:
  - {key: a, title: Alpha, message: left, anchors: [[0.15, 0.375]]}
  - {key: b, title: Beta, message: right, anchors: [[0.65, 0.375]]}
  - {key: c, title: Gamma, message: nowhere, anchors: [[0.05, 0.05]]}
`
	if err := os.WriteFile(catPath, []byte(cat), 0o644); err != nil {
		t.Fatal(err)
	}
	return []string{"--base", basePath, "--overlay", overlayPath, "--catalog", catPath, "--log-level", "error"}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", append(workspace(t), "inspect")...)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"size:       10x4", "components: 2", "unmapped:   0", "components=0 pixels=0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReplay(t *testing.T) {
	t.Parallel()

	events := strings.Join([]string{
		"# hover a, slide to b, click, leave",
		"move 1.5 1.5",
		"move 2.5 2.5",
		"bogus 1 2",
		"move 6.5 1.5",
		"click 6.5 1.5",
		"click 0.5 0.5",
		"leave",
	}, "\n")
	out, err := run(t, events, append(workspace(t), "replay")...)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	want := strings.Join([]string{
		"cursor pointer",
		"render a",
		"render b",
		`detail b "Beta" "right"`,
		"cursor default",
		"render -",
	}, "\n") + "\n"
	if out != want {
		t.Fatalf("replay output:\n%s\nwant:\n%s", out, want)
	}
}

func TestReplayScaledRect(t *testing.T) {
	t.Parallel()

	out, err := run(t, "move 103 53\n", append(workspace(t), "replay", "--rect", "100,50,20,8")...)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if out != "cursor pointer\nrender a\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderAndLabels(t *testing.T) {
	t.Parallel()

	args := workspace(t)
	dir := t.TempDir()
	frame := filepath.Join(dir, "frame.png")
	if _, err := run(t, "", append(args, "render", "--item", "a", "-o", frame)...); err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := os.Open(frame)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := utils.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, _, _ := img.At(1, 1).RGBA(); r>>8 != 200 || g != 0 {
		t.Fatalf("item pixel not recoloured: %v", img.At(1, 1))
	}
	if r, _, _, _ := img.At(6, 1).RGBA(); r != 0 {
		t.Fatalf("other item recoloured: %v", img.At(6, 1))
	}

	if _, err := run(t, "", append(args, "render", "--item", "zzz", "-o", frame)...); err == nil {
		t.Fatal("expected unknown item error")
	}

	labels := filepath.Join(dir, "labels.png")
	if _, err := run(t, "", append(args, "labels", "--by-item", "-o", labels)...); err != nil {
		t.Fatalf("labels: %v", err)
	}
	if _, err := os.Stat(labels); err != nil {
		t.Fatalf("labels image not written: %v", err)
	}
}

func TestPalette(t *testing.T) {
	t.Parallel()

	args := workspace(t)
	dir := t.TempDir()
	for _, method := range []string{"dominantcolor", "kmeans"} {
		swatches := filepath.Join(dir, method+".png")
		out, err := run(t, "", append(args, "palette", "--item", "a", "-k", "3", "--method", method, "--tile", "8", "-o", swatches)...)
		if err != nil {
			t.Fatalf("palette %s: %v", method, err)
		}
		if out != "#c80000\n" {
			t.Fatalf("palette %s output = %q", method, out)
		}
		f, err := os.Open(swatches)
		if err != nil {
			t.Fatal(err)
		}
		img, _, err := utils.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
			t.Fatalf("palette %s image bounds = %v", method, b)
		}
	}

	if _, err := run(t, "", append(args, "palette", "--item", "c", "-o", filepath.Join(dir, "c.png"))...); err == nil {
		t.Fatal("expected error for item without components")
	}
	if _, err := run(t, "", append(args, "palette", "--item", "a", "--method", "median-cut")...); err == nil {
		t.Fatal("expected unknown method error")
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	args := workspace(t)
	out, err := run(t, "", append(args, "locate", "--x", "7", "--y", "2")...)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if !strings.Contains(out, "label: 2") || !strings.Contains(out, "item:  b (Beta)") {
		t.Fatalf("output = %q", out)
	}
	out, err = run(t, "", append(args, "locate", "--x", "50", "--y", "2")...)
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if !strings.Contains(out, "label: 0") || !strings.Contains(out, "item:  -") {
		t.Fatalf("output = %q", out)
	}
}

func TestMissingImageFails(t *testing.T) {
	t.Parallel()

	args := workspace(t)
	args[1] = filepath.Join(t.TempDir(), "missing.png")
	_, err := run(t, "", append(args, "inspect")...)
	if err == nil || !strings.Contains(err.Error(), "load base image") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseRect(t *testing.T) {
	t.Parallel()

	seg, err := hotspot.NewSegmentation(
		image.NewNRGBA(image.Rect(0, 0, 8, 6)),
		image.NewNRGBA(image.Rect(0, 0, 8, 6)),
		nil, hotspot.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		in      string
		want    hotspot.Rect
		wantErr bool
	}{
		{name: "default", in: "", want: hotspot.Rect{Width: 8, Height: 6}},
		{name: "explicit", in: "10, 20,30.5,40", want: hotspot.Rect{Left: 10, Top: 20, Width: 30.5, Height: 40}},
		{name: "too few", in: "1,2,3", wantErr: true},
		{name: "not a number", in: "1,2,x,4", wantErr: true},
		{name: "zero width", in: "0,0,0,4", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseRect(tt.in, seg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("parseRect(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    event
		wantErr bool
	}{
		{in: "move 1 2.5", want: event{kind: "move", x: 1, y: 2.5}},
		{in: "CLICK 3 4", want: event{kind: "click", x: 3, y: 4}},
		{in: "leave", want: event{kind: "leave"}},
		{in: "leave now", wantErr: true},
		{in: "move 1", wantErr: true},
		{in: "move a b", wantErr: true},
		{in: "scroll 1 2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseEvent(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Fatalf("parseEvent(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
