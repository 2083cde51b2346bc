package testsupport

import (
	"os"
	"time"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Day returns midnight UTC of the given date, for stable publish times.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
