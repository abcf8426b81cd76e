package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ordnung/internal/log"
	"ordnung/pkg/types"
)

// resolveDuplicate decides the outcome of a file move whose destination
// already exists. It returns the final destination path, or an empty path
// with a skip reason. Each branch resolves to a single atomic rename, so
// a failure never leaves two half-moved files behind.
func (e *Engine) resolveDuplicate(strategy types.DuplicateStrategy, src, dst string) (string, string) {
	switch strategy {
	case types.DuplicateSkip:
		log.Info("Destination %s exists, skipping %s (strategy: skip)", dst, src)
		return "", "duplicate: skipped"

	case types.DuplicateOverwrite:
		log.Warn("Overwriting %s with %s (strategy: overwrite)", dst, src)
		return dst, ""

	case types.DuplicateRenameWithTimestamp:
		alt := timestampedName(dst, e.now())
		if _, err := os.Stat(alt); err == nil {
			log.Warn("Timestamped name %s also exists, skipping %s", alt, src)
			return "", "duplicate: timestamped name exists"
		}
		log.Info("Destination %s exists, moving %s to %s (strategy: rename_with_timestamp)", dst, src, alt)
		return alt, ""

	case types.DuplicateAsk:
		log.Warn("Interactive duplicate handling is not implemented, skipping %s", src)
		return "", "duplicate: interactive mode unavailable"

	default:
		log.Warn("Unknown duplicate strategy %q, skipping %s", strategy, src)
		return "", "duplicate: unknown strategy"
	}
}

// timestampedName derives "{base}_{yyyyMMddHHmmssfff}{ext}" in the same
// destination folder.
func timestampedName(dst string, now time.Time) string {
	ext := filepath.Ext(dst)
	base := strings.TrimSuffix(filepath.Base(dst), ext)
	stamp := now.Format("20060102150405.000")
	stamp = strings.Replace(stamp, ".", "", 1)
	return filepath.Join(filepath.Dir(dst), fmt.Sprintf("%s_%s%s", base, stamp, ext))
}
