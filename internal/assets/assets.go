package assets

// Built-in asset names.
const (
	StylePrint  = "print"  // isolated print surface
	StylePage   = "page"   // live page with print-only region
	StyleThemed = "themed" // preview and PDF container layout

	TemplateIsolated = "isolated"
	TemplatePage     = "page"
	TemplateThemed   = "themed"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the default embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
