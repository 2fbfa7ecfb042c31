package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		for _, hint := range errors.FlattenHints(err) {
			_, _ = fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}
