package pyast

import "strings"

// moduleToRel converts a dotted module path ("utils.c") to the relative file
// path it names ("utils/c.py").
func moduleToRel(module string) string {
	return strings.ReplaceAll(module, ".", "/") + ".py"
}

// relToModule converts a relative file path ("utils/c.py") to its dotted
// module name ("utils.c").
func relToModule(rel string) string {
	trimmed := strings.TrimSuffix(rel, ".py")
	return strings.ReplaceAll(trimmed, "/", ".")
}

// splitModuleAndName splits "utils.c.add" into ("utils.c", "add"). The input
// must contain at least one dot.
func splitModuleAndName(full string) (module, name string, ok bool) {
	i := strings.LastIndex(full, ".")
	if i < 0 {
		return "", "", false
	}
	return full[:i], full[i+1:], true
}
