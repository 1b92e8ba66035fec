package version

import (
	"fmt"
	"runtime"
)

const MAJOR uint = 0
const MINOR uint = 1
const PATCH uint = 0

// GitCommit is set at build time:
//
//	go build -ldflags "-X github.com/nttcom/pcepobj/internal/pkg/version.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

func Version() string {
	return fmt.Sprintf("%d.%d.%d", MAJOR, MINOR, PATCH)
}

// Info is the --version line of a command.
func Info(cmd string) string {
	if GitCommit == "" {
		return fmt.Sprintf("%s %s (%s)", cmd, Version(), runtime.Version())
	}
	return fmt.Sprintf("%s %s-%s (%s)", cmd, Version(), GitCommit, runtime.Version())
}
