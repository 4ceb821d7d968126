package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Build  bool
	Decode bool
	Merge  bool
	Patch  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Build = boolEnv("RICH_DEBUG_BUILD")
	d.Decode = boolEnv("RICH_DEBUG_DECODE")
	d.Merge = boolEnv("RICH_DEBUG_MERGE")
	d.Patch = boolEnv("RICH_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Build() bool {
	return d.Build
}
func Decode() bool {
	return d.Decode
}
func Merge() bool {
	return d.Merge
}
func Patch() bool {
	return d.Patch
}
