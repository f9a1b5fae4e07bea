// Package shader embeds the GLSL sources used by the demos.
package shader

import "embed"

// FS holds every vertex (.vs) and fragment (.fs) shader.
//
//go:embed *.vs *.fs
var FS embed.FS
