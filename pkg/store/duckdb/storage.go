package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const AnalysisRunsSchema = `
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id VARCHAR PRIMARY KEY,
		ticker VARCHAR NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		forms VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		stage VARCHAR NOT NULL DEFAULT '',
		progress INTEGER NOT NULL DEFAULT 0,
		error VARCHAR NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	AnalysisRunsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
