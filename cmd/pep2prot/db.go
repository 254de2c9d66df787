package main

import (
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lilab-monash/protpeptigram/pepmap"
)

// end is a reserved word in SQLite, hence the quoting.
const pepmatchSchema = `
CREATE TABLE IF NOT EXISTS pepmatch (
	peptide TEXT NOT NULL,
	protein TEXT NOT NULL,
	start INTEGER NOT NULL,
	"end" INTEGER NOT NULL,
	mismatches INTEGER NOT NULL,
	matched TEXT NOT NULL
);
`

// writeDB copies every placement into a SQLite database so downstream tools
// can join against the placements instead of re-parsing TSV.
func writeDB(path string, matches pepmap.ProteinMatches, proteinOrder []string) (int, error) {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html . It seems that sqlite3 permitted
	// URI filenames without the file: prefix, but that is not standard.
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if _, err := db.Exec(pepmatchSchema); err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Preparex(`INSERT INTO pepmatch (peptide, protein, start, "end", mismatches, matched) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	n := 0
	for _, protein := range proteinOrder {
		for _, m := range matches[protein] {
			if _, err := stmt.Exec(m.Peptide, m.Protein, m.Start, m.End, m.Mismatches, m.Matched); err != nil {
				tx.Rollback()
				return 0, err
			}
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return n, nil
}
