// Package config reads typed settings from environment variables.
// Must* panics through the root logger when a value is missing or malformed;
// May* falls back to a default and logs a warning when a set value cannot be parsed
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"langid/internal/platform/logger"
)

// Conf is a prefixed view over the environment, e.g. New().Prefix("CORE_LANGID_")
type Conf struct{ prefix string }

// New returns an unprefixed Conf
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) value(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

func (c Conf) missing(k string) {
	logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
}

func (c Conf) invalid(k, v, what string) {
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Msg("invalid " + what)
}

// must fetches a required value and parses it, panicking on either failure
func must[T any](c Conf, k, what string, parse func(string) (T, error)) T {
	s := c.value(k)
	if s == "" {
		c.missing(k)
	}
	v, err := parse(s)
	if err != nil {
		c.invalid(k, s, what)
	}
	return v
}

// may fetches an optional value, returning def when unset or unparsable
func may[T any](c Conf, k, what string, def T, parse func(string) (T, error)) T {
	s := c.value(k)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Interface("default", def).
			Msg("invalid " + what + "; using default")
		return def
	}
	return v
}

func parseString(s string) (string, error) { return s, nil }

// MustString returns a required non-empty value
func (c Conf) MustString(k string) string { return must(c, k, "string", parseString) }

// MustInt returns a required integer
func (c Conf) MustInt(k string) int { return must(c, k, "int", strconv.Atoi) }

// MustBool returns a required boolean in strconv.ParseBool syntax
func (c Conf) MustBool(k string) bool { return must(c, k, "bool", strconv.ParseBool) }

// MustDuration returns a required duration such as 250ms or 2s
func (c Conf) MustDuration(k string) time.Duration {
	return must(c, k, "duration", time.ParseDuration)
}

// MustURL returns a required absolute URL
func (c Conf) MustURL(k string) *url.URL {
	return must(c, k, "absolute URL", func(s string) (*url.URL, error) {
		u, err := url.Parse(s)
		if err == nil && !u.IsAbs() {
			err = strconv.ErrSyntax
		}
		return u, err
	})
}

// MustPort returns a listen address like ":4000" for a port in 1..65535
func (c Conf) MustPort(k string) string {
	return must(c, k, "TCP port", func(s string) (string, error) {
		p, err := strconv.Atoi(s)
		if err == nil && (p < 1 || p > 65535) {
			err = strconv.ErrRange
		}
		return ":" + s, err
	})
}

// Require panics unless every key is set
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.value(k) == "" {
			c.missing(k)
		}
	}
}

// MayString returns the value or def
func (c Conf) MayString(k, def string) string { return may(c, k, "string", def, parseString) }

// MayInt returns the value or def
func (c Conf) MayInt(k string, def int) int { return may(c, k, "int", def, strconv.Atoi) }

// MayFloat64 returns the value or def
func (c Conf) MayFloat64(k string, def float64) float64 {
	return may(c, k, "float64", def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def
func (c Conf) MayBool(k string, def bool) bool { return may(c, k, "bool", def, strconv.ParseBool) }

// MayDuration returns the value or def
func (c Conf) MayDuration(k string, def time.Duration) time.Duration {
	return may(c, k, "duration", def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(k string, def []string) []string {
	var out []string
	for p := range strings.SplitSeq(c.value(k), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it matches one of allowed (case-insensitive), def when unset,
// and panics otherwise
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v := c.MayString(k, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(v)
		}
	}
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
