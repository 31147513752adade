package cmd

import "strings"

// flagAliases maps each accepted short or long name of the file, width and
// height flags to its canonical name, so the driver accepts
// "-f", "--f", "-file", and "--file" (any leading dash count) as spellings
// of the same flag, matching the original tool's tolerant, first-letter
// flag parsing. Only exact short/long spellings are recognized -- this
// deliberately does not do blind first-letter dispatch across every flag,
// since newer flags like "fast" and "file" now share a first letter.
var flagAliases = map[string]string{
	"f":      "file",
	"file":   "file",
	"w":      "width",
	"width":  "width",
	"h":      "height",
	"height": "height",
}

// NormalizeArgs rewrites tolerant spellings of --file/--width/--height to
// their canonical long form before urfave/cli sees the argument list.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = normalizeArg(a)
	}
	return out
}

func normalizeArg(a string) string {
	trimmed := strings.TrimLeft(a, "-")
	if trimmed == a {
		return a // no leading dash, not a flag
	}
	name, value, hasValue := strings.Cut(trimmed, "=")
	canon, ok := flagAliases[name]
	if !ok {
		return a
	}
	if hasValue {
		return "--" + canon + "=" + value
	}
	return "--" + canon
}
