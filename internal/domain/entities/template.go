package entities

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// TemplateContext maps placeholder names to the scalar values substituted
// into option templates (notes, version, projectName, tag, ...).
type TemplateContext map[string]any

var (
	// placeholderPattern matches {{name}} placeholders, allowing inner spaces.
	placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.-]*)\s*\}\}`)
	// nonFinitePattern matches the infinity and NaN spellings strconv accepts.
	nonFinitePattern = regexp.MustCompile(`(?i)^[+-]?(inf|infinity|nan)$`)
)

// RenderTemplate substitutes every known placeholder in text with its
// stringified context value. Unknown placeholders are kept literally.
func RenderTemplate(text string, context TemplateContext) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := context[name]
		if !ok {
			return match
		}
		return scalarText(value)
	})
}

// Coerce converts rendered text back to its most specific scalar type:
// int64 for integers that fit, float64 for any other finite number ("1e3",
// ".5", integers beyond int64), bool (exactly "true"/"false") or the text itself.
func Coerce(text string) any {
	switch text {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	if nonFinitePattern.MatchString(text) {
		return text
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}

// Environment returns the context as sorted NAME=value pairs, each name being
// prefix followed by the upper snake case key (projectName -> PROJECT_NAME).
func (c TemplateContext) Environment(prefix string) []string {
	env := make([]string, 0, len(c))
	for key, value := range c {
		env = append(env, prefix+environmentName(key)+"="+scalarText(value))
	}
	sort.Strings(env)
	return env
}

func environmentName(key string) string {
	var builder strings.Builder
	for i, r := range key {
		switch {
		case unicode.IsUpper(r) && i > 0:
			builder.WriteByte('_')
			builder.WriteRune(r)
		case r == '-' || r == '.':
			builder.WriteByte('_')
		default:
			builder.WriteRune(unicode.ToUpper(r))
		}
	}
	return builder.String()
}

func scalarText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
