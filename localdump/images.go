package localdump

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// downloadImages fetches every image into dir concurrently.  The first failure cancels the rest.
func (exporter *Exporter) downloadImages(ctx context.Context, images []Image, dir string) error {
	grp, gctx := errgroup.WithContext(ctx)

	for _, img := range images {
		img := img
		grp.Go(func() error {
			return exporter.downloadImage(gctx, img, dir)
		})
	}

	return grp.Wait()
}

// downloadImage GETs the image without any credentials, the CDN doesn't want them, and stores
// it as dir/<filename>, replacing whatever was there.
func (exporter *Exporter) downloadImage(ctx context.Context, img Image, dir string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
	if err != nil {
		return fmt.Errorf("localdump: couldn't instantiate http request for %s: %w", img.URL, err)
	}

	resp, err := exporter.imageClient().Do(req)
	if err != nil {
		return fmt.Errorf("localdump: couldn't download %s: %w", img.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("localdump: HTTP %d for %s", resp.StatusCode, img.URL)
	}

	dest := filepath.Join(dir, img.Filename)
	if err := writeFileAtomic(dest, func(w io.Writer) error {
		_, err := io.Copy(w, resp.Body)
		return err
	}); err != nil {
		return fmt.Errorf("localdump: couldn't save image %s: %w", img.Filename, err)
	}

	return nil
}

func (exporter *Exporter) imageClient() *http.Client {
	if exporter.ImageClient != nil {
		return exporter.ImageClient
	}
	return http.DefaultClient
}
