// Package migrations embebe los archivos SQL que goose aplica al arrancar.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
