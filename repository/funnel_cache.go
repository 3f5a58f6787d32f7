package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/GGlistano/repo2/models"
	"github.com/GGlistano/repo2/utils"
	"github.com/redis/go-redis/v9"
)

const funnelCachePrefix = "funnel:slug:"

// CachedFunnelRepository decora um FunnelRepository com um cache
// read-through em Redis. Falhas do cache nunca falham a consulta:
// o pedido segue sempre para o repositório interno.
type CachedFunnelRepository struct {
	inner FunnelRepository
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedFunnelRepository cria um repositório de funis com cache
func NewCachedFunnelRepository(inner FunnelRepository, rdb *redis.Client, ttl time.Duration) *CachedFunnelRepository {
	return &CachedFunnelRepository{inner: inner, rdb: rdb, ttl: ttl}
}

// GetBySlug procura primeiro no cache e só depois no armazenamento
func (r *CachedFunnelRepository) GetBySlug(slug string) (*models.Funnel, error) {
	ctx := context.Background()
	key := funnelCachePrefix + slug

	if payload, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var funnel models.Funnel
		if err := json.Unmarshal(payload, &funnel); err == nil {
			return &funnel, nil
		}
	}

	funnel, err := r.inner.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(funnel); err == nil {
		if err := r.rdb.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			utils.LogError("Falha ao guardar funil no cache: %v", err)
		}
	}

	return funnel, nil
}

// Create cria o funil e invalida a entrada correspondente do cache
func (r *CachedFunnelRepository) Create(funnel *models.Funnel) error {
	if err := r.inner.Create(funnel); err != nil {
		return err
	}
	if err := r.rdb.Del(context.Background(), funnelCachePrefix+funnel.Slug).Err(); err != nil {
		utils.LogError("Falha ao invalidar cache do funil %s: %v", funnel.Slug, err)
	}
	return nil
}

// List delega no repositório interno; listagens não passam pelo cache
func (r *CachedFunnelRepository) List() ([]models.Funnel, error) {
	return r.inner.List()
}
