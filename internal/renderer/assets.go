package renderer

import _ "embed"

// Static assets emitted around the analysis table.
var (
	//go:embed assets/table.css
	tableCSS string

	//go:embed assets/toggle.css
	toggleCSS string

	//go:embed assets/toggle.js
	toggleJS string
)
