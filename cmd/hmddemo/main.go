// Command hmddemo drives a head-mounted display render target for a number
// of frames and prints the tracked hand poses.
//
// Without a vendor runtime compiled in it runs against the simulated
// runtime:
//
//	hmddemo --frames 5 --teardown on-zero --verbose
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hmddemo:", err)
		os.Exit(1)
	}
}
