package main

import (
	"testing"
)

// main must return without serving when SKIP_SERVER_RUN is set.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}
