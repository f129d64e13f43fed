package nav

// constraintMacros are the named constraints accepted as ":name(macro)".
// Any other constraint is taken as a regular expression.
var constraintMacros = map[string]string{
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"hex":      `[0-9a-fA-F]+`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,

	// 1-based page of a paged listing, no leading zeros.
	"page": `[1-9][0-9]*`,
	"year": `[0-9]{4}`,
	// Language tag segment such as "en" or "pt-BR".
	"locale": `[a-zA-Z]{2,3}(?:-[a-zA-Z]{2})?`,
}

// constraintPattern resolves a parameter constraint to its regexp source.
func constraintPattern(constraint string) string {
	if p, ok := constraintMacros[constraint]; ok {
		return p
	}
	return constraint
}
