package booking

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	errMissingFields = httperr.ErrBusiness("missing_fields")
	errMissingDate   = httperr.ErrBusiness("missing_date")
	errInvalidDate   = httperr.ErrBusiness("invalid_date")
)
