package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of values
type enumValue struct {
	allowed []string
	aliases map[string]string
	value   string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnum(def string, allowed ...string) *enumValue {
	return &enumValue{allowed: allowed, value: def}
}

func (e *enumValue) withAlias(alias, target string) *enumValue {
	if e.aliases == nil {
		e.aliases = map[string]string{}
	}
	e.aliases[alias] = target
	return e
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(raw string) error {
	v := strings.ToLower(strings.TrimSpace(raw))
	if target, ok := e.aliases[v]; ok {
		v = target
	}
	for _, a := range e.allowed {
		if v == a {
			e.value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return "string" }
