// Package assets resolves wallpaper sources into decoded textures: local
// files, directories (random pick), remote URLs and solid hex colors.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"resty.dev/v3"

	"github.com/driftworks/driftpaper/internal/texture"
)

// Loader turns wallpaper requests into textures. It is safe to share: the
// resty client handles its own pooling and nothing else is mutated.
type Loader struct {
	http *resty.Client
}

func NewLoader() *Loader {
	return &Loader{
		http: resty.New().SetHeader("User-Agent", "driftpaper"),
	}
}

// Load resolves a source string: "#rrggbb"/"#rrggbbaa" yields a solid
// color, http(s) URLs are fetched, directories yield a random image file,
// anything else is read as a local image file.
func (l *Loader) Load(source string) (*texture.Image, error) {
	if strings.HasPrefix(source, "#") {
		c, err := ParseHexColor(source)
		if err != nil {
			return nil, err
		}
		return texture.Solid(1, 1, c), nil
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.fetch(source)
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", source, err)
	}
	if info.IsDir() {
		picked, err := pickRandom(source)
		if err != nil {
			return nil, err
		}
		log.Debug("picked wallpaper from directory", "dir", source, "file", picked)
		source = picked
	}
	return loadFile(source)
}

func loadFile(path string) (*texture.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s: %w", path, err)
	}
	log.Debug("decoded wallpaper", "path", path, "format", format)
	return texture.FromImage(img), nil
}

func (l *Loader) fetch(url string) (*texture.Image, error) {
	resp, err := l.http.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("cannot fetch %s: %s", url, resp.Status())
	}

	img, format, err := image.Decode(bytes.NewReader(resp.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s: %w", url, err)
	}
	log.Debug("fetched wallpaper", "url", url, "format", format)
	return texture.FromImage(img), nil
}

// pickRandom selects one decodable image file from a directory.
func pickRandom(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", dir, err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
			candidates = append(candidates, filepath.Join(dir, e.Name()))
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no image files in %s", dir)
	}
	return candidates[rand.IntN(len(candidates))], nil
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	c := color.RGBA{A: 255}

	switch len(hex) {
	case 3:
		n, err := parseNibbles(hex)
		if err != nil {
			return c, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c.R, c.G, c.B = n[0]*17, n[1]*17, n[2]*17
	case 6, 8:
		for i := 0; i+1 < len(hex); i += 2 {
			n, err := parseNibbles(hex[i : i+2])
			if err != nil {
				return c, fmt.Errorf("invalid color %q: %w", s, err)
			}
			v := n[0]<<4 | n[1]
			switch i {
			case 0:
				c.R = v
			case 2:
				c.G = v
			case 4:
				c.B = v
			case 6:
				c.A = v
			}
		}
	default:
		return c, fmt.Errorf("invalid color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	return c, nil
}

func parseNibbles(s string) ([]uint8, error) {
	out := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= '0' && ch <= '9':
			out[i] = ch - '0'
		case ch >= 'a' && ch <= 'f':
			out[i] = ch - 'a' + 10
		case ch >= 'A' && ch <= 'F':
			out[i] = ch - 'A' + 10
		default:
			return nil, fmt.Errorf("bad hex digit %q", ch)
		}
	}
	return out, nil
}
