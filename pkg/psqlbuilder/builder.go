package psqlbuilder

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// builder squirrel со знаками $1, $2... для PostgreSQL
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains шаблон ILIKE "содержит подстроку" с экранированием % и _
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
