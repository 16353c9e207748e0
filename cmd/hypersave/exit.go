package main

import (
	hypersave "github.com/Hypersave-AI/hypersave-sdk"
)

// Exit codes by error kind. Errors that did not come from the SDK (bad
// flags, unknown commands) exit with 1.
var exitCodes = map[hypersave.ErrorKind]int{
	hypersave.KindGeneric:        1,
	hypersave.KindValidation:     2,
	hypersave.KindAuthentication: 3,
	hypersave.KindNotFound:       4,
	hypersave.KindRateLimit:      5,
	hypersave.KindTimeout:        6,
	hypersave.KindNetwork:        7,
	hypersave.KindServer:         8,
	hypersave.KindParse:          9,
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[hypersave.KindOf(err)]; ok {
		return code
	}
	return 1
}
