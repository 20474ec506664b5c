package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/crimewatch/backend/internal/pkg/constants"
)

const (
	tableReporters    = "reporters"
	tableAdmins       = "admins"
	tableExternalOrgs = "external_orgs"
	tableSessions     = "sessions"
	tableCrimeTypes   = "crime_types"
	tableLocations    = "locations"
	tableReports      = "reports"
	tableReportAddons = "report_addons"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel statement builder with Postgres
// placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
