// Package migrations embute as migrações goose do GoVidly no binário.
package migrations

import "embed"

// FS contém os arquivos *.sql deste diretório.
//
//go:embed *.sql
var FS embed.FS
