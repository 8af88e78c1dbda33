// Package assets provides the CSS styles and HTML templates used to build
// preview pages, print surfaces and PDF documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is what the session uses. It tries the custom directory first
// and falls back to the embedded copy when an asset is missing, so a user can
// override only the print stylesheet and keep every other default.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # print, page, themed
//	└── templates/
//	    └── {name}.html      # isolated, page, themed
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
