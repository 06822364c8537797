// Package openapi turns component schemas of an OpenAPI 3 document into forms.
//
// Documents are read from a file, an fs.FS entry or an HTTP endpoint and parsed
// with kin-openapi. Each string-like property of the selected schema becomes a
// text entry row; formats, length bounds and the required list become
// validators.
package openapi
