// Package options holds the per-integration credentials and settings passed
// into every command handler, keyed by integration namespace.
package options

import "fmt"

// Values maps an integration namespace (e.g. "trello") to its key/value
// settings. Built once at startup from the environment and never mutated
// during request handling.
type Values map[string]map[string]string

// MissingKeyError reports the first required key found missing or empty
// under a namespace.
type MissingKeyError struct {
	Namespace string
	Key       string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing %s.%s", e.Namespace, e.Key)
}

// Get returns the value of key under namespace, or "" when absent.
func (v Values) Get(namespace, key string) string {
	return v[namespace][key]
}

// Check verifies that every required key is present and non-empty under the
// given namespace, scanning keys in declaration order. It returns the
// namespace's settings on success, or a *MissingKeyError naming the first
// missing key. Pure: Values is never modified.
func Check(v Values, namespace string, keys ...string) (map[string]string, error) {
	ns := v[namespace]
	for _, key := range keys {
		if ns[key] == "" {
			return nil, &MissingKeyError{Namespace: namespace, Key: key}
		}
	}
	return ns, nil
}

// Require runs Check and binds the validated namespace into a typed options
// struct via bind. The zero value of T is returned alongside any error.
func Require[T any](v Values, namespace string, bind func(ns map[string]string) T, keys ...string) (T, error) {
	ns, err := Check(v, namespace, keys...)
	if err != nil {
		var zero T
		return zero, err
	}
	return bind(ns), nil
}
