package flagx

import (
	"os"
	"strconv"
	"time"
)

// EnvString overwrites *dst with the value of key when the variable is set.
func EnvString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// EnvDuration overwrites *dst when key holds a valid time.Duration string.
// Unparsable values are ignored.
func EnvDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

// EnvInt overwrites *dst when key holds a valid integer.
func EnvInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// EnvBoolPtr is EnvBool for optional settings: *dst is set only when key
// holds a valid boolean and stays nil otherwise.
func EnvBoolPtr(dst **bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = &b
		}
	}
}

// EnvBool overwrites *dst when key holds a value accepted by strconv.ParseBool.
func EnvBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
