package constants

type (
	APIStatus  string
	DataSource string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	DataSourceCache    DataSource = "cache"
	DataSourceFallback DataSource = "api"
)
