package constants

const (
	MsgLoadedFromCache = "Data loaded from the cache"
	MsgLoadedFromAPI   = "Data loaded from the API"
	MsgCacheCleared    = "Cache cleared"
)

const (
	MsgInvalidTTL      = "ttl must be a positive duration, e.g. 60s"
	MsgInvalidBody     = "request body must be valid JSON"
	MsgCacheFailure    = "Cache store failure"
	MsgTooManyRequests = "Too many requests"
)
