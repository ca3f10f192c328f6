package repos

import (
	"fmt"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/georgysavva/scany/v2/dbscan"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// rowsAPI tolerates columns the row structs do not declare, so a schema
// migrated ahead of the binary still scans.
var rowsAPI = mustNewRowsAPI()

type (
	// Scanner maps result rows onto structs by their db tags. An empty
	// result for ScanOne is reported as model.ErrDeviceNotFound.
	Scanner interface {
		ScanAll(dst any, rows pgx.Rows) error
		ScanOne(dst any, rows pgx.Rows) error
	}

	PgxScanner struct {
		api *pgxscan.API
	}
)

func NewPgxScanner() *PgxScanner {
	return &PgxScanner{api: rowsAPI}
}

func (s *PgxScanner) ScanAll(dst any, rows pgx.Rows) error {
	return s.api.ScanAll(dst, rows)
}

func (s *PgxScanner) ScanOne(dst any, rows pgx.Rows) error {
	err := s.api.ScanOne(dst, rows)
	if pgxscan.NotFound(err) {
		return model.ErrDeviceNotFound
	}

	return err
}

func mustNewRowsAPI() *pgxscan.API {
	dbAPI, err := pgxscan.NewDBScanAPI(dbscan.WithAllowUnknownColumns(true))
	if err != nil {
		panic(fmt.Errorf("failed to create dbscan API: %w", err))
	}

	api, err := pgxscan.NewAPI(dbAPI)
	if err != nil {
		panic(fmt.Errorf("failed to create pgxscan API: %w", err))
	}

	return api
}
