package policy

import "github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics: репозиторий работает и с *sql.DB, и с транзакцией из контекста
type DBExecutor = dbmetrics.DBExecutor
