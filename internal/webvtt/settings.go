package webvtt

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	integerRegex = regexp.MustCompile(`^-?\d+$`)
	percentRegex = regexp.MustCompile(`^(\d{1,3})(\.\d*)?%$`)
)

// Settings is an ordered key/value bag where the first assignment of a key wins.
// The typed helpers validate their input and silently drop anything invalid.
type Settings struct {
	keys   []string
	values map[string]any
}

func NewSettings() *Settings {
	return &Settings{values: make(map[string]any)}
}

// stores v under k unless k is already present; empty strings are ignored
func (s *Settings) Set(k string, v any) {
	if s.Has(k) {
		return
	}
	if str, ok := v.(string); ok && str == "" {
		return
	}
	s.keys = append(s.keys, k)
	s.values[k] = v
}

func (s *Settings) Has(k string) bool {
	_, ok := s.values[k]
	return ok
}

func (s *Settings) Get(k string) (any, bool) {
	v, ok := s.values[k]
	return v, ok
}

// keys in assignment order
func (s *Settings) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// sets k to v only when v is one of the alternatives
func (s *Settings) Alt(k, v string, alternatives ...string) {
	for _, a := range alternatives {
		if v == a {
			s.Set(k, v)
			return
		}
	}
}

// sets k to the integer value of v when v is a signed decimal integer
func (s *Settings) Integer(k, v string) {
	if !integerRegex.MatchString(v) {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	s.Set(k, n)
}

// sets k to the percentage in v ("12.5%") when it lies in [0,100] and reports
// whether v was a valid percentage
func (s *Settings) Percent(k, v string) bool {
	if !percentRegex.MatchString(v) {
		return false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	if err != nil || f < 0 || f > 100 {
		return false
	}
	s.Set(k, f)
	return true
}

func settingOr[T any](s *Settings, k string, dflt T) T {
	v, ok := s.values[k]
	if !ok {
		return dflt
	}
	typed, ok := v.(T)
	if !ok {
		return dflt
	}
	return typed
}

// splits input into groups and each group into exactly one key and value.
// A nil groupSep keeps input as a single group.
func parseOptions(
	input string,
	keyValueDelim string,
	groupSep func(string) []string,
	fn func(k, v string),
) {
	groups := []string{input}
	if groupSep != nil {
		groups = groupSep(input)
	}
	for _, group := range groups {
		kv := strings.Split(group, keyValueDelim)
		if len(kv) != 2 {
			continue
		}
		fn(strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1]))
	}
}

func splitWhitespace(s string) []string {
	return strings.FieldsFunc(s, unicode.IsSpace)
}

func splitComma(s string) []string {
	return strings.Split(s, ",")
}
