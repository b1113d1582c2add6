package psqlbuilder

import "github.com/Masterminds/squirrel"

// psql билдер с плейсхолдерами $1, $2 ... для PostgreSQL
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select начинает SELECT запрос.
// Сервис работает с базой тенанта только на чтение, поэтому билдеры записи не экспортируются.
func Select(columns ...string) squirrel.SelectBuilder {
	return psql.Select(columns...)
}
