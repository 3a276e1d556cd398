// Package swagger embeds the OpenAPI document describing the HTTP API.
package swagger

import _ "embed"

// Spec is the OpenAPI 2.0 document for the user registry API.
//
//go:embed users.swagger.json
var Spec []byte
