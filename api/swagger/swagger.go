// Package swagger embeds the OpenAPI description of the HTTP API.
package swagger

import _ "embed"

// Doc is the OpenAPI 2.0 document served at /openapi.json.
//
//go:embed user.swagger.json
var Doc []byte
