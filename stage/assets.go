package stage

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/surprise/media"
)

// DecodeImages decodes the referenced images from fsys concurrently, at most
// limit at a time (unlimited when limit <= 0). References to files that do
// not exist are logged and left out of the result; any other failure cancels
// the remaining work and is returned.
func DecodeImages(ctx context.Context, fsys fs.FS, refs []string, limit int) (map[string]image.Image, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]image.Image, len(refs))
	)
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeImage(fsys, ref)
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("surprise: image %q not found, skipping", ref)
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			out[ref] = img
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeImage(fsys fs.FS, ref string) (image.Image, error) {
	f, err := fsys.Open(media.AssetPath(ref))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", ref, err)
	}
	return img, nil
}

// ImageSet holds GPU images keyed by their payload reference.
type ImageSet map[string]*ebiten.Image

// NewImageSet uploads decoded images. It must run on the game goroutine or
// before the game loop starts.
func NewImageSet(decoded map[string]image.Image) ImageSet {
	set := make(ImageSet, len(decoded))
	for ref, img := range decoded {
		set[ref] = ebiten.NewImageFromImage(img)
	}
	return set
}

// Get returns the image for ref, or nil.
func (s ImageSet) Get(ref string) *ebiten.Image {
	if ref == "" {
		return nil
	}
	return s[ref]
}
