//go:build !linux

package types

import (
	"os"
	"time"
)

func creationTime(info os.FileInfo) time.Time {
	return time.Time{}
}
