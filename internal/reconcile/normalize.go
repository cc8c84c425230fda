package reconcile

import (
	"strings"

	"github.com/ownersup/coachd/internal/store"
)

// Oracles emit enum-like fields as free text: "Network Activation",
// "work/business", "proposals". Everything is canonicalized to the fixed
// lowercase/underscore token set before it reaches the persister.

// enumAliases maps canonicalized-but-nonstandard tokens to their canonical
// form.
var enumAliases = map[string]string{
	"absent_without_updates": store.StatusAbsentWithoutUpdate,
	"proposals":              store.StageProposal,
	"none":                   store.ActivityNoneMentioned,
}

// NormalizeEnum lowercases a value and collapses spaces, slashes, and
// hyphens to underscores, then applies known aliases.
func NormalizeEnum(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.NewReplacer(" ", "_", "/", "_", "-", "_").Replace(v)
	for strings.Contains(v, "__") {
		v = strings.ReplaceAll(v, "__", "_")
	}
	if canonical, ok := enumAliases[v]; ok {
		return canonical
	}
	return v
}

// NormalizeActivity canonicalizes a marketing activity type. Empty values
// normalize to the none_mentioned sentinel instead of being dropped.
func NormalizeActivity(value string) string {
	v := NormalizeEnum(value)
	if v == "" {
		return store.ActivityNoneMentioned
	}
	return v
}

// NormalizeContract canonicalizes an optional contract type. Nil and empty
// stay nil: no contract was awarded.
func NormalizeContract(value *string) *string {
	if value == nil {
		return nil
	}
	v := NormalizeEnum(*value)
	if v == "" {
		return nil
	}
	return &v
}
