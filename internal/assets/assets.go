package assets

// Names of the built-in assets.
const (
	DefaultStyleName    = "manpage"
	DefaultTemplateName = "page"
)

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded CSS style by name (without the .css extension).
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name is not a plain file stem.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an embedded HTML template by name (without the .html
// extension).
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name is not a plain file stem.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
