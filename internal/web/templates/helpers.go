package templates

import (
	"net/url"

	"github.com/a-h/templ"
)

func selectorURL(timeframe string) templ.SafeURL {
	return templ.SafeURL("/timeframe/" + url.PathEscape(timeframe))
}
