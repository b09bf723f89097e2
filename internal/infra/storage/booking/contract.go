package booking

import (
	"github.com/mondihair/MH-BookingService/pkg/dbmetrics"
)

// Database interfaces reused from dbmetrics so the repository runs both
// against the instrumented pool and inside transactions.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
