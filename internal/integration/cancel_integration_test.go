package integration

import (
	"context"
	"io"
	"strings"
	"testing"

	"fqscan/internal/app"
)

func TestCanceled_Exit130(t *testing.T) {
	fn := write(t, "big.fq", strings.Repeat("@r\nACGTACGT\n+\nIIIIIIII\n", 1<<12))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, sub := range []string{"count", "stats", "validate", "convert"} {
		code := app.RunContext(ctx, []string{sub, fn}, io.Discard, io.Discard)
		if code != 130 {
			t.Fatalf("%s: expected exit 130 on cancel, got %d", sub, code)
		}
	}
}
