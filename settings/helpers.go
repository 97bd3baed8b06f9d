package settings

import (
	"strconv"
	"time"

	"github.com/ordishs/gocore"
)

// lookup parses the config value for key, falling back to def when the key is
// unset, empty or does not parse.
func lookup[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := gocore.Config().Get(key)
	if !ok || raw == "" {
		return def
	}

	v, err := parse(raw)
	if err != nil {
		return def
	}

	return v
}

func getString(key, def string) string {
	return lookup(key, def, func(s string) (string, error) { return s, nil })
}

func getInt(key string, def int) int {
	return lookup(key, def, strconv.Atoi)
}

func getBool(key string, def bool) bool {
	return gocore.Config().GetBool(key, def)
}

func getFloat64(key string, def float64) float64 {
	return lookup(key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// getDuration reads Go duration strings ("90s", "5m"), a bare number is seconds.
func getDuration(key string, def time.Duration) time.Duration {
	return lookup(key, def, func(s string) (time.Duration, error) {
		if secs, err := strconv.Atoi(s); err == nil {
			return time.Duration(secs) * time.Second, nil
		}

		return time.ParseDuration(s)
	})
}
