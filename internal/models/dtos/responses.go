package dtos

import "time"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services"`
	UpSince  time.Time                `json:"up_since"`
	Uptime   string                   `json:"uptime"`
}

// CatalogueResponse is returned by GET /api/games
type CatalogueResponse struct {
	Games     any    `json:"games"`
	Source    string `json:"source"`
	FromCache bool   `json:"from_cache"`
}

// CacheEntryResponse is returned by GET /api/cache/{key}
type CacheEntryResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
