package progress

import (
	"github.com/pcj/mobyprogress"
)

// WriteDiscoverProgress reports the outcome of file discovery.
func WriteDiscoverProgress(output mobyprogress.Output, message string) {
	output.WriteProgress(mobyprogress.Progress{
		ID:      "discover",
		Action:  "discover",
		Message: message,
	})
}

// WriteParseProgress reports how many units have been parsed and resolved.
func WriteParseProgress(output mobyprogress.Output, current, total int, lastUpdate bool) {
	output.WriteProgress(mobyprogress.Progress{
		ID:         "parse",
		Action:     "parsing units",
		Current:    int64(current),
		Total:      int64(total),
		Units:      "units",
		LastUpdate: lastUpdate,
	})
}

// WriteEnvironmentProgress reports an environment rebuild.
func WriteEnvironmentProgress(output mobyprogress.Output, message string) {
	output.WriteProgress(mobyprogress.Progress{
		ID:      "environment",
		Action:  "environment",
		Message: message,
	})
}
