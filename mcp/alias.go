package mcp

import (
	"sort"
	"strings"
)

// apiSite is the site whose pages back the docs_api symbol table.
const apiSite = "pydantic"

// symbolPages maps well-known Pydantic symbols to their reference pages.
// Keys are matched case-insensitively via LookupSymbol.
var symbolPages = map[string]string{
	"basemodel":        "api/base_model",
	"rootmodel":        "api/root_model",
	"field":            "api/fields",
	"configdict":       "api/config",
	"typeadapter":      "api/type_adapter",
	"validationerror":  "api/pydantic_core",
	"validate_call":    "api/validate_call",
	"field_validator":  "api/functional_validators",
	"model_validator":  "api/functional_validators",
	"field_serializer": "api/functional_serializers",
	"computed_field":   "api/fields",
	"dataclass":        "api/dataclasses",
	"basesettings":     "concepts/pydantic_settings",
	"settings":         "concepts/pydantic_settings",
	"json_schema":      "concepts/json_schema",
}

// LookupSymbol resolves a symbol name to its reference page path.
func LookupSymbol(symbol string) (string, bool) {
	page, ok := symbolPages[normalizeSymbol(symbol)]
	return page, ok
}

// KnownSymbols lists the resolvable symbol names, sorted.
func KnownSymbols() []string {
	names := make([]string, 0, len(symbolPages))
	for name := range symbolPages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalizeSymbol lowercases and reduces qualified names like
// "pydantic.BaseModel" to the bare symbol.
func normalizeSymbol(symbol string) string {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return strings.ReplaceAll(s, " ", "")
}
