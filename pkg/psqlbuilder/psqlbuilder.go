package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder squirrel с плейсхолдерами postgres ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}
