package dynobj

import "fmt"

// debugDynobj gates verbose shape-transition tracing behind a plain
// const-bool-plus-printf switch rather than a logging framework.
const debugDynobj = false

func debugf(format string, args ...interface{}) {
	if debugDynobj {
		fmt.Printf(format, args...)
	}
}
