// Package database is the relational fetcher of scrapetab.
//
// A Session pins one connection for a whole query batch and runs the fixed
// statements of the query Catalog one at a time. Three drivers are supported:
//   - mysql (github.com/go-sql-driver/mysql), the default, pointed at the
//     public Rfam server
//   - postgres (github.com/jackc/pgx/v5/stdlib) for a local Rfam import
//   - sqlite (modernc.org/sqlite) for snapshots and tests
//
// Statements are written with ? placeholders and rebound for postgres.
// A failing statement is returned as a *QueryError; a failing connection
// wraps model.ErrTransport.
package database
