package throttle

import "github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
