package config

import (
	"os"
	"regexp"
)

var percentVar = regexp.MustCompile(`%([a-zA-Z_0-9]+)%`)

// expandEnv replaces $VAR, ${VAR} and %VAR% with the environment value.
// "$$" stays a literal dollar sign.
func expandEnv(v string) string {
	v = percentVar.ReplaceAllString(v, "$${$1}")
	return os.Expand(v, func(name string) string {
		if name == "$" {
			return "$"
		}
		return os.Getenv(name)
	})
}
