// Package debug holds switches, read once from the environment, that turn on
// diagnostic output to stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Alloc bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("JT_DEBUG_PARSE")
	d.Alloc = boolEnv("JT_DEBUG_ALLOC")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Alloc() bool {
	return d.Alloc
}
