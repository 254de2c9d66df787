package main

import "embed"

//go:embed templates/*.html templates/static
var embeddedTemplates embed.FS
