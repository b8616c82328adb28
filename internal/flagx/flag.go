// Package flagx lets several independent loaders share os.Args. Each loader
// filters the arguments down to the flags it owns before handing them to its
// own flag.FlagSet, so unknown flags never abort parsing.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the allowed value flags from args, together with
// their values. Both "-k value" and "-k=value" forms are recognised. A token
// that starts with "-" is never consumed as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := toSet(allowedFlags)
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
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

// FilterSwitches keeps only the allowed boolean flags from args. Unlike
// FilterArgs it never treats the following token as a value, so
// "-hash positional" yields just "-hash".
func FilterSwitches(args []string, switches []string) []string {
	allowed := toSet(switches)
	filtered := make([]string, 0, len(args))

	for _, arg := range args {
		name, _, _ := strings.Cut(arg, "=")
		if _, keep := allowed[name]; keep {
			filtered = append(filtered, arg)
		}
	}
	return filtered
}

// ConfigFileFlag returns the config file path passed via -c or -config, or
// an empty string when neither is present. If both are given the last wins.
func ConfigFileFlag() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file (JSON or YAML)")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(args)

	return path
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
