// Package cache implementa la caché versionada de reportes sobre Redis.
//
// Cada lectura agregada se guarda bajo "<partes>:<versión>". Una mutación confirmada
// incrementa la versión global, dejando huérfanas las claves anteriores (expiran por TTL).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	versionKey  = "compras:reports:version"
	bumpChannel = "compras.reports.bump"
	defaultTTL  = 5 * time.Minute
)

// ReportCache caché JSON versionada. Un cliente nil desactiva la caché: las lecturas
// llaman directamente al loader y Bump no hace nada.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache construye la caché. ttl <= 0 usa cinco minutos.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Version devuelve la versión actual, inicializándola en 1.
func (c *ReportCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) || (err == nil && ver <= 0) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey compone la clave con la versión vigente.
func (c *ReportCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("cache: versión: %w", err)
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON devuelve el valor cacheado en dest o lo calcula con loader y lo guarda.
func (c *ReportCache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	if c != nil && c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			return fmt.Errorf("cache: leer %s: %w", key, err)
		}
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return fmt.Errorf("cache: guardar %s: %w", key, err)
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalida todas las lecturas cacheadas y publica la nueva versión.
func (c *ReportCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return fmt.Errorf("cache: incrementar versión: %w", err)
	}
	return c.client.Publish(ctx, bumpChannel, strconv.FormatInt(ver, 10)).Err()
}

// Invalidate implementa ports.ReportInvalidator.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.Bump(ctx)
}
