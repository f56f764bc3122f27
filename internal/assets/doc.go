// Package assets provides the stylesheet and page template used to build
// standalone HTML manual pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader ships the "manpage" style and the "page" template.
// AssetResolver is what the build command uses: a custom directory can
// override either asset, and anything it lacks falls back to the embedded
// copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css     # e.g. manpage.css
//	└── templates/
//	    └── {name}.html    # e.g. page.html
//
// # Security
//
// Asset names are validated before they become file names.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
