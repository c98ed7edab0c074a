package broker

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/musaihq/holdings/internal/domain"
)

// DumpPayload writes a raw broker response to the debug directory for
// diagnostics. It is a side effect only: failures are logged, never
// propagated, and nothing downstream reads these files.
func DumpPayload(dir, name string, raw []byte) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("debug dump: cannot create dir", "dir", dir, "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.json", name, domain.NowKST().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		slog.Warn("debug dump: write failed", "path", path, "error", err)
		return
	}
	slog.Debug("debug dump written", "path", path)
}
