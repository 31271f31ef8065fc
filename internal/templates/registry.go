package templates

import "fmt"

// DefaultKind is the template used when none is chosen.
const DefaultKind = Basic

// registry is the internal list of available templates, in display order.
var registry = []Template{
	{
		Kind:        Basic,
		Description: "Express + TypeScript server with a health route",
		UseCase:     "APIs without persistence, prototypes, learning",
		Default:     true,
	},
	{
		Kind:        Advanced,
		Description: "Express + Drizzle ORM + Better Auth, SQLite or Neon Postgres",
		UseCase:     "Production APIs with a database and user accounts",
	},
}

// Get returns a template by kind.
func Get(kind Kind) (Template, error) {
	for _, t := range registry {
		if t.Kind == kind {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %s", kind)
}

// List returns all available templates.
func List() []Template {
	out := make([]Template, len(registry))
	copy(out, registry)
	return out
}

// GetDefault returns the default template.
func GetDefault() Template {
	t, _ := Get(DefaultKind)
	return t
}

// Names returns all template names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, t := range registry {
		names = append(names, t.Name())
	}
	return names
}
