// Package obs contains observability utilities such as logging.
package obs

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global structured logger shared by the front-ends and the sandbox.
//
// It defaults to a JSON handler on stderr so packages can log before InitLogger runs.
var Logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

// InitLogger replaces Logger with a JSON handler writing to w at the given level.
func InitLogger(w io.Writer, level slog.Level) {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	Logger = slog.New(h)
}
