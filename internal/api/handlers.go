package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"infinite-experiment/gamecache/internal/cache"
	"infinite-experiment/gamecache/internal/common"
	"infinite-experiment/gamecache/internal/constants"
	"infinite-experiment/gamecache/internal/models/dtos"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// GamesHandler handles GET /api/games
func (h *Handlers) GamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		res, err := h.deps.Services.Catalogue.Load(r.Context())
		if err != nil {
			common.RespondCacheError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, res.Message, dtos.CatalogueResponse{
			Games:     res.Games,
			Source:    string(res.Source),
			FromCache: res.FromCache,
		})
	}
}

// ClearGamesCacheHandler handles DELETE /api/games/cache
func (h *Handlers) ClearGamesCacheHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := h.deps.Services.Catalogue.Clear(r.Context()); err != nil {
			common.RespondCacheError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgCacheCleared, nil)
	}
}

// GetCacheEntryHandler handles GET /api/cache/{key}
func (h *Handlers) GetCacheEntryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		key := chi.URLParam(r, "key")

		value, found, err := cache.Get[json.RawMessage](r.Context(), h.deps.Cache, key)
		if err != nil {
			common.RespondCacheError(w, initTime, err)
			return
		}
		if !found {
			common.RespondMessage(w, initTime, http.StatusNotFound, "No data in cache for key "+key)
			return
		}

		common.RespondSuccess(w, initTime, "ok", dtos.CacheEntryResponse{Key: key, Value: value})
	}
}

// SetCacheEntryHandler handles POST /api/cache/{key}. An existing entry is
// left untouched.
func (h *Handlers) SetCacheEntryHandler() http.HandlerFunc {
	return h.writeEntry(func(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) error {
		return h.deps.Cache.Set(ctx, key, value, ttl)
	})
}

// UpdateCacheEntryHandler handles PUT /api/cache/{key}. The entry must exist.
func (h *Handlers) UpdateCacheEntryHandler() http.HandlerFunc {
	return h.writeEntry(func(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) error {
		return h.deps.Cache.Update(ctx, key, value, ttl)
	})
}

// DeleteCacheEntryHandler handles DELETE /api/cache/{key}
func (h *Handlers) DeleteCacheEntryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		key := chi.URLParam(r, "key")

		if err := h.deps.Cache.Delete(r.Context(), key); err != nil {
			common.RespondCacheError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Record was removed from cache", nil)
	}
}

type writeFunc func(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) error

func (h *Handlers) writeEntry(write writeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		key := chi.URLParam(r, "key")

		ttl := h.deps.DefaultTTL
		if raw := r.URL.Query().Get("ttl"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				common.RespondMessage(w, initTime, http.StatusBadRequest, constants.MsgInvalidTTL)
				return
			}
			ttl = parsed
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondCacheError(w, initTime, fmt.Errorf("%w: limit is %d bytes", common.ErrBodyTooLarge, tooLarge.Limit))
			return
		}
		if err != nil || !json.Valid(body) {
			common.RespondMessage(w, initTime, http.StatusBadRequest, constants.MsgInvalidBody)
			return
		}

		if err := write(r.Context(), key, json.RawMessage(body), ttl); err != nil {
			common.RespondCacheError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "ok", nil)
	}
}
