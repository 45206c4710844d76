package suppliers

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// grnconnect merges four calls into {hotel, country, city, images}. Country,
// city and images depend only on the hotel record and run concurrently.
// Only a missing hotel is no data; the side calls enrich and may come up empty.
func grnconnect(c *client) fetchFunc {
	return func(ctx context.Context, id string) (any, error) {
		if err := c.require(c.creds.APIKey); err != nil {
			return nil, err
		}
		h := header("api-key", c.creds.APIKey)

		res, err := c.getJSON(ctx, "hotel", c.url("/api/v3/hotels", url.Values{"hcode": {id}, "version": {"2.0"}}), h)
		if err != nil {
			return nil, err
		}
		hotel := lookup(res, "hotels")
		if !present(hotel) {
			hotel = res["hotel"]
		}
		if l, ok := hotel.([]any); ok && len(l) > 0 {
			hotel = l[0]
		}
		if !present(hotel) {
			return nil, ErrNoData
		}

		var country, city, images any
		g, gctx := errgroup.WithContext(ctx)
		side := func(dst *any, endpoint, path, key string) {
			g.Go(func() error {
				m, err := c.getJSON(gctx, endpoint, c.url(path, nil), h)
				if errors.Is(err, ErrNoData) {
					return nil
				}
				if err != nil {
					return err
				}
				if v, ok := m[key]; ok && key != "" {
					*dst = v
					return nil
				}
				*dst = m
				return nil
			})
		}
		if code := text(lookup(hotel, "country")); code != "" {
			side(&country, "country", "/api/v3/countries/"+url.PathEscape(code), "country")
		}
		if code := text(lookup(hotel, "city_code")); code != "" {
			side(&city, "city", "/api/v3/cities/"+url.PathEscape(code), "city")
		}
		side(&images, "images", "/api/v3/hotels/"+url.PathEscape(id)+"/images", "")
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return map[string]any{
			"hotel":   hotel,
			"country": country,
			"city":    city,
			"images":  images,
		}, nil
	}
}
