package repository

import (
	"context"
	"database/sql"
	"folio/infras/otel"
	"folio/infras/postgres"
	"folio/shared/constant"
	"folio/shared/dto"
	"folio/shared/logger"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var errRequiredFilter = errors.New("refusing to run without a filter")

// Joiner is implemented by read models that select columns from other tables.
type Joiner interface {
	GetJoinQuery() string
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	expr := c.table + "." + c.name
	if c.alias != "" {
		expr += " AS " + c.alias
	}

	return expr
}

// Repository is the CRUD layer every table shares. T is read from the db tags; fields tagged with
// another table are selected through the Joiner query and never inserted.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entity, table, primaryColumn string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns := collectColumns(table, reflect.TypeOf(zero))

	insertColumns := make([]string, 0, len(columns))

	for _, col := range columns {
		if col.table == table {
			insertColumns = append(insertColumns, col.name)
		}
	}

	join := ""
	if joiner, ok := any(zero).(Joiner); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            db,
		otel:          otl,
		table:         table,
		entity:        entity,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+operation)
}

func (repo *Repository[T]) fail(scope otel.Scope, err error, action string) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return errors.Wrapf(err, "%s %s", action, repo.entity)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	placeholders := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		placeholders[i] = ":" + col
	}

	query := "INSERT INTO " + repo.table + " (" + strings.Join(repo.InsertColumns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, err, "insert")
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	if err := repo.get(ctx, scope, &exist, "SELECT EXISTS(SELECT 1 FROM "+repo.table+where+")", args); err != nil {
		return false, repo.fail(scope, err, "check existence of")
	}

	return exist, nil
}

// Get returns the first matching row, or the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(ctx, filter)

	err := repo.get(ctx, scope, &model, repo.selectFrom(columns)+where+" LIMIT 1", args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, err, "get")
	}

	return model, nil
}

// GetAll honours params.Orders first, then SortBy/SortDir, and pages when Limit is set.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var query strings.Builder

	query.WriteString(repo.selectFrom(columns))
	query.WriteString(where)

	switch {
	case len(params.Orders) > 0:
		orders := make([]string, len(params.Orders))
		for i, order := range params.Orders {
			orders[i] = order.String()
		}

		query.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	case params.SortBy != "" && params.SortDir != "":
		query.WriteString(" ORDER BY " + params.SortBy + " " + params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		query.WriteString(" LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			query.WriteString(" OFFSET :offset")
		}
	}

	models := []T{}

	if err := repo.selectAll(ctx, scope, &models, query.String(), args); err != nil {
		return models, repo.fail(scope, err, "list")
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var count int

	query := "SELECT COUNT(" + repo.table + "." + repo.primaryColumn + ") FROM " + repo.table + " " + repo.join + where
	if err := repo.get(ctx, scope, &count, query, args); err != nil {
		return 0, repo.fail(scope, err, "count")
	}

	return count, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := "DELETE FROM " + repo.table + where
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, err, "delete")
	}

	return nil
}

// Update sets the given columns on every matching row. Column names come from db tags, never from
// the client.
func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(fields))

	for _, col := range slices.Sorted(maps.Keys(fields)) {
		placeholder := "set_" + col
		assignments = append(assignments, col+" = :"+placeholder)
		args[placeholder] = fields[col]
	}

	query := "UPDATE " + repo.table + " SET " + strings.Join(assignments, ", ") + where
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, err, "update")
	}

	return nil
}

// BuildWhereClause renders filter as " WHERE ...", or "" with empty args when it has no filters.
func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where, args
}

func (repo *Repository[T]) selectFrom(only []string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return "SELECT " + strings.Join(exprs, ", ") + " FROM " + repo.table + " " + repo.join
}

func (repo *Repository[T]) get(ctx context.Context, scope otel.Scope, dest any, query string, args map[string]any) error {
	bound, values, err := repo.bind(scope, query, args)
	if err != nil {
		return err
	}

	return repo.db.Read.GetContext(ctx, dest, bound, values...) //nolint:wrapcheck
}

func (repo *Repository[T]) selectAll(ctx context.Context, scope otel.Scope, dest any, query string, args map[string]any) error {
	bound, values, err := repo.bind(scope, query, args)
	if err != nil {
		return err
	}

	return repo.db.Read.SelectContext(ctx, dest, bound, values...) //nolint:wrapcheck
}

// bind turns :named args into postgres $n placeholders.
func (repo *Repository[T]) bind(scope otel.Scope, query string, args map[string]any) (string, []any, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	bound, values, err := sqlx.Named(query, args)
	if err != nil {
		return "", nil, errors.Wrap(err, "bind named query")
	}

	return repo.db.Read.Rebind(bound), values, nil
}

// collectColumns walks the db tags of t, flattening embedded structs. A table tag moves the
// column to a joined table and a column tag aliases it.
func collectColumns(table string, t reflect.Type) []column {
	columns := []column{}

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, collectColumns(table, field.Type)...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		col := column{name: name, table: table}

		if joined := field.Tag.Get("table"); joined != "" {
			col.table = joined
		}

		if source := field.Tag.Get("column"); source != "" {
			col.name = source
			col.alias = name
		}

		columns = append(columns, col)
	}

	return columns
}
