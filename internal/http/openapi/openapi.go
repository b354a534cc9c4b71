// Package openapi embeds the OpenAPI document of the sandbox products API.
package openapi

import _ "embed"

// YAML contains the embedded OpenAPI document.
//
//go:embed openapi.yaml
var YAML []byte
