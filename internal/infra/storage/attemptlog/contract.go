package attemptlog

import "github.com/m04kA/RMS-BookingGateway/pkg/dbmetrics"

// DBExecutor интерфейс исполнителя SQL-запросов.
// Поддерживает *sql.DB и обертку *dbmetrics.DB.
type DBExecutor = dbmetrics.DBExecutor
