package watch

import _ "embed"

const (
	routeIndex  = "/"
	routeEvents = "/events"
	routeLatest = "/report.json"
)

const sseEventReport = "report"

//go:embed viewer.html
var indexHTML string
