package version

import "fmt"

var (
	Version = "0.1.0"

	// git hash should be filled by:
	// 	go build -ldflags="-X github.com/cayleygraph/ldt/version.GitHash=xxxx"

	GitHash   = "dev snapshot"
	BuildDate string
)

// String returns a one-line description of the build.
func String() string {
	s := fmt.Sprintf("ldt %v (%v)", Version, GitHash)
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
