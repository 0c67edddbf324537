// Package assets provides the CSS styles and email templates used by the renderer.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in email)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to the
// EmbeddedLoader only when the asset is not found. Validation and I/O errors
// from the custom directory are returned as-is.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS injected into the HTML <head>
//	└── templates/
//	    └── {name}/
//	        ├── email.html       # html/template body
//	        └── email.txt        # text/template body
//
// # Security
//
// Asset names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
