// Package flagx lets several components parse their own flags out of the
// same os.Args without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowedFlags, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a following
// argument is treated as the value only when it does not itself start with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, known := allowed[name]; known {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, known := allowed[arg]; !known {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag returns the path given with -c or -config, or "" when
// neither is present.
func ConfigFileFlag() string {
	return stringFlag("config", "c", "path to JSON config file")
}

// DotEnvFileFlag returns the path given with -env-file, or "" when absent.
func DotEnvFileFlag() string {
	return stringFlag("env-file", "", "path to .env file")
}

func stringFlag(long, short, usage string) string {
	var value string

	names := []string{"-" + long}
	if short != "" {
		names = append(names, "-"+short)
	}

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&value, long, "", usage)
	if short != "" {
		fs.StringVar(&value, short, "", usage)
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], names))

	return value
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
