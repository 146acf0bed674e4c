package metrics

// spdxIDs holds lower-cased SPDX identifiers of OSI-approved and other
// commonly used licenses.
var spdxIDs = map[string]struct{}{
	"0bsd":                {},
	"afl-3.0":             {},
	"agpl-1.0":            {},
	"agpl-3.0":            {},
	"agpl-3.0-only":       {},
	"agpl-3.0-or-later":   {},
	"apache-1.0":          {},
	"apache-1.1":          {},
	"apache-2.0":          {},
	"apsl-2.0":            {},
	"artistic-1.0":        {},
	"artistic-2.0":        {},
	"blueoak-1.0.0":       {},
	"bsd-1-clause":        {},
	"bsd-2-clause":        {},
	"bsd-2-clause-patent": {},
	"bsd-3-clause":        {},
	"bsd-3-clause-clear":  {},
	"bsd-4-clause":        {},
	"bsl-1.0":             {},
	"cal-1.0":             {},
	"cc-by-3.0":           {},
	"cc-by-4.0":           {},
	"cc-by-sa-3.0":        {},
	"cc-by-sa-4.0":        {},
	"cc0-1.0":             {},
	"cddl-1.0":            {},
	"cddl-1.1":            {},
	"cecill-2.1":          {},
	"cpal-1.0":            {},
	"cpl-1.0":             {},
	"ecl-2.0":             {},
	"efl-2.0":             {},
	"epl-1.0":             {},
	"epl-2.0":             {},
	"eupl-1.1":            {},
	"eupl-1.2":            {},
	"gpl-1.0":             {},
	"gpl-2.0":             {},
	"gpl-2.0-only":        {},
	"gpl-2.0-or-later":    {},
	"gpl-3.0":             {},
	"gpl-3.0-only":        {},
	"gpl-3.0-or-later":    {},
	"isc":                 {},
	"lgpl-2.0":            {},
	"lgpl-2.0-only":       {},
	"lgpl-2.0-or-later":   {},
	"lgpl-2.1":            {},
	"lgpl-2.1-only":       {},
	"lgpl-2.1-or-later":   {},
	"lgpl-3.0":            {},
	"lgpl-3.0-only":       {},
	"lgpl-3.0-or-later":   {},
	"lppl-1.3c":           {},
	"mit":                 {},
	"mit-0":               {},
	"mpl-1.0":             {},
	"mpl-1.1":             {},
	"mpl-2.0":             {},
	"ms-pl":               {},
	"ms-rl":               {},
	"mulanpsl-2.0":        {},
	"ncsa":                {},
	"odbl-1.0":            {},
	"ofl-1.1":             {},
	"osl-3.0":             {},
	"postgresql":          {},
	"python-2.0":          {},
	"ruby":                {},
	"unicode-dfs-2016":    {},
	"unlicense":           {},
	"upl-1.0":             {},
	"vim":                 {},
	"w3c":                 {},
	"wtfpl":               {},
	"x11":                 {},
	"zlib":                {},
	"zpl-2.1":             {},
}
