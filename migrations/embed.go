// Package migrations содержит SQL миграции схемы, встроенные в бинарник
package migrations

import "embed"

// FS goose миграции (*.sql)
//
//go:embed *.sql
var FS embed.FS
