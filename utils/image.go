package utils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/setanarut/hotspot"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads a PNG, JPEG, GIF, BMP, TIFF or WebP image.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// Fetch reads and decodes the image at src, which is either a file path or
// an http(s) URL.
func Fetch(ctx context.Context, src string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = download(ctx, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}
	img, _, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// LoadPair fetches the greyscale base and colour overlay images. Both must
// load and share the same size; the error names the resource that failed.
func LoadPair(ctx context.Context, basePath, overlayPath string) (base, overlay *image.NRGBA, err error) {
	b, err := Fetch(ctx, basePath)
	if err != nil {
		return nil, nil, fmt.Errorf("load base image %q: %w", basePath, err)
	}
	o, err := Fetch(ctx, overlayPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load overlay image %q: %w", overlayPath, err)
	}
	bs, ovs := b.Bounds().Size(), o.Bounds().Size()
	if bs != ovs {
		return nil, nil, fmt.Errorf("%q is %dx%d, %q is %dx%d: %w",
			basePath, bs.X, bs.Y, overlayPath, ovs.X, ovs.Y, hotspot.ErrDimensionMismatch)
	}
	return hotspot.ToNRGBA(b), hotspot.ToNRGBA(o), nil
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
