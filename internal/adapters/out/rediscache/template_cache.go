// Package rediscache puts a read-through Redis cache in front of product
// template lookups.
package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "product_template:"

// TemplateCache implements ports.ProductTemplateReader. Redis failures are
// logged and the lookup falls through to the wrapped reader, so a cache
// outage never fails a queue request. SKUs without a template are not cached.
type TemplateCache struct {
	c      *redis.Client
	next   ports.ProductTemplateReader
	ttl    time.Duration
	logger *slog.Logger
}

func New(addr string, next ports.ProductTemplateReader, ttl time.Duration, logger *slog.Logger) *TemplateCache {
	return &TemplateCache{
		c: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		next:   next,
		ttl:    ttl,
		logger: logger.With("component", "template_cache"),
	}
}

func (r *TemplateCache) Close() error {
	return r.c.Close()
}

func (r *TemplateCache) FindBySKUs(ctx context.Context, skus []string) ([]*product.Template, error) {
	if len(skus) == 0 {
		return []*product.Template{}, nil
	}

	hits, misses, err := r.getMany(ctx, skus)
	if err != nil {
		r.logger.WarnContext(ctx, "Template cache read failed", "error", err)
		return r.next.FindBySKUs(ctx, skus)
	}

	if len(misses) == 0 {
		return hits, nil
	}

	loaded, err := r.next.FindBySKUs(ctx, misses)
	if err != nil {
		return nil, err
	}

	if err = r.setMany(ctx, loaded); err != nil {
		r.logger.WarnContext(ctx, "Template cache write failed", "error", err)
	}

	return append(hits, loaded...), nil
}

// Invalidate drops cached templates, e.g. after an operator edits one.
func (r *TemplateCache) Invalidate(ctx context.Context, skus ...string) error {
	if len(skus) == 0 {
		return nil
	}
	keys := make([]string, len(skus))
	for i, sku := range skus {
		keys[i] = keyPrefix + sku
	}
	if err := r.c.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func (r *TemplateCache) getMany(ctx context.Context, skus []string) ([]*product.Template, []string, error) {
	keys := make([]string, len(skus))
	for i, sku := range skus {
		keys[i] = keyPrefix + sku
	}

	vals, err := r.c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, errors.Wrap(err, "redis mget")
	}

	var hits []*product.Template
	var misses []string
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			misses = append(misses, skus[i])
			continue
		}
		tpl, err := decode([]byte(raw))
		if err != nil {
			// Stale or foreign entry; reload it from the source.
			misses = append(misses, skus[i])
			continue
		}
		hits = append(hits, tpl)
	}
	return hits, misses, nil
}

func (r *TemplateCache) setMany(ctx context.Context, templates []*product.Template) error {
	if len(templates) == 0 {
		return nil
	}

	pipe := r.c.Pipeline()
	for _, tpl := range templates {
		b, err := encode(tpl)
		if err != nil {
			return errors.Wrap(err, "encode template")
		}
		pipe.Set(ctx, keyPrefix+tpl.SKU(), b, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

type templateJSON struct {
	SKU                 string   `json:"sku"`
	Name                string   `json:"name"`
	Category            string   `json:"category,omitempty"`
	PersonalizationType string   `json:"personalization_type"`
	Length              *float64 `json:"length,omitempty"`
	Width               *float64 `json:"width,omitempty"`
	Height              *float64 `json:"height,omitempty"`
	Weight              *float64 `json:"weight,omitempty"`
	CanvaTemplateURL    *string  `json:"canva_template_url,omitempty"`
	SLABusinessDays     int      `json:"sla_business_days"`
	IsActive            bool     `json:"is_active"`
}

func encode(t *product.Template) ([]byte, error) {
	d := t.Dimensions()
	return json.Marshal(templateJSON{
		SKU:                 t.SKU(),
		Name:                t.Name(),
		Category:            t.Category(),
		PersonalizationType: t.PersonalizationType().String(),
		Length:              d.Length,
		Width:               d.Width,
		Height:              d.Height,
		Weight:              d.Weight,
		CanvaTemplateURL:    t.CanvaTemplateURL(),
		SLABusinessDays:     t.SLABusinessDays(),
		IsActive:            t.IsActive(),
	})
}

func decode(b []byte) (*product.Template, error) {
	var j templateJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return nil, err
	}
	ptype, err := product.ParsePersonalizationType(j.PersonalizationType)
	if err != nil {
		return nil, err
	}
	return product.NewTemplate(product.Params{
		SKU:                 j.SKU,
		Name:                j.Name,
		Category:            j.Category,
		PersonalizationType: ptype,
		Dimensions:          product.Dimensions{Length: j.Length, Width: j.Width, Height: j.Height, Weight: j.Weight},
		CanvaTemplateURL:    j.CanvaTemplateURL,
		SLABusinessDays:     j.SLABusinessDays,
		IsActive:            j.IsActive,
	})
}
