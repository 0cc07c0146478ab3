// Package flagx helps several independent flag sets share one command line.
//
// Each configuration stage (config file lookup, runtime flags) parses only the
// flags it owns, so unknown flags from other stages never cause parse errors.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Spec describes the flags a stage owns: flag name (with leading dash) mapped
// to whether the flag consumes a separate value argument. Boolean flags map
// to false.
type Spec map[string]bool

// FilterArgs returns the subset of args that belongs to the flags in spec,
// keeping their values and the original order.
//
// Supported forms:
//
//	-c conf.json
//	--config=conf.json
//	-d              (boolean, spec value false)
//
// A value-taking flag followed by another flag (or by nothing) is kept on its
// own, so the flag package can report the missing value.
func FilterArgs(args []string, spec Spec) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := spec[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		takesValue, ok := spec[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if takesValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFile extracts the JSON config path given with -c or -config.
// It returns "" when neither flag is present.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, Spec{"-c": true, "-config": true, "--config": true}))

	return path
}
