// Package repository is the generic sqlx table gateway the domain repositories embed.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"tourdesk/infras/otel"
	"tourdesk/infras/postgres"
	"tourdesk/shared/constant"
	"tourdesk/shared/dto"
	"tourdesk/shared/logger"

	"github.com/jmoiron/sqlx"
)

const setParamPrefix = "set_"

var errRequiredFilter = errors.New("required filter")

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is a table gateway for a db-tagged model T. Embedded structs such as
// model.Metadata contribute their columns too. Reads go to the read pool, writes to the
// write pool or the given transaction.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columnsOf(reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation, query string) (context.Context, otel.Scope) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))

	if query != "" {
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	}

	return ctx, scope
}

// fail logs and traces err and wraps it with the operation and entity.
func (repo *Repository[T]) fail(scope otel.Scope, operation string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", operation, repo.entity, err)
}

// read prepares query on the read pool and hands the statement to fn.
func (repo *Repository[T]) read(ctx context.Context, operation, query string, fn func(*sqlx.NamedStmt) error) error {
	return repo.statement(ctx, repo.db.Read, operation, query, fn)
}

func (repo *Repository[T]) statement(ctx context.Context, db preparer, operation, query string, fn func(*sqlx.NamedStmt) error) error {
	ctx, scope := repo.scope(ctx, operation, query)
	defer scope.End()

	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = fn(stmt); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return repo.fail(scope, operation, err)
	}

	return err
}

func (repo *Repository[T]) exec(ctx context.Context, db execer, operation, query string, arg any) error {
	ctx, scope := repo.scope(ctx, operation, query)
	defer scope.End()

	if _, err := db.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, operation, err)
	}

	return nil
}

// WithTx runs fn inside a write transaction. The transaction is rolled back when fn
// returns an error or panics, and committed otherwise.
func (repo *Repository[T]) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.scope(ctx, "WithTx", "")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction (%s): %w", repo.entity, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.columns))
	for idx, col := range repo.columns {
		placeholders[idx] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, repo.db.Write, "insert data", repo.insertQuery(), model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, sqltx, "insert data", repo.insertQuery(), model)
}

// InsertBulk inserts models in one statement. An empty slice is a no-op.
func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, repo.db.Write, "insert data", repo.insertQuery(), models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, sqltx, "insert data", repo.insertQuery(), models)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", repo.table, where)

	err := repo.read(ctx, "check exist data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

// Get returns the first row matching filter. No match yields the zero T and a nil error.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", repo.selectList(columns...), repo.table, where)

	err := repo.read(ctx, "get data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.BuildWhereClause(filter)
	tail := repo.orderAndPage(params, args)

	query := fmt.Sprintf("SELECT %s FROM %s%s%s", repo.selectList(columns...), repo.table, where, tail)

	models := []T{}

	err := repo.read(ctx, "get all data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	var count int

	where, args := repo.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s%s", repo.table, repo.primaryColumn, repo.table, where)

	err := repo.read(ctx, "count data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

func (repo *Repository[T]) delete(ctx context.Context, db execer, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, db, "delete data", fmt.Sprintf("DELETE FROM %s%s", repo.table, where), args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, filter)
}

// updateQuery binds new values under a set_ prefix so they never collide with filter
// arguments of the same name.
func (repo *Repository[T]) updateQuery(mod map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))

	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s%s", col, setParamPrefix, col))
		args[setParamPrefix+col] = mod[col]
	}

	return fmt.Sprintf("UPDATE %s SET %s%s", repo.table, strings.Join(assignments, ", "), where), args, nil
}

func (repo *Repository[T]) update(ctx context.Context, db execer, mod map[string]any, filter dto.FilterGroup) error {
	query, args, err := repo.updateQuery(mod, filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, db, "update data", query, args)
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, mod, filter)
}

// orderAndPage renders ORDER BY and LIMIT/OFFSET for params, adding the paging values to
// args. Sorting is applied only on a known column.
func (repo *Repository[T]) orderAndPage(params dto.QueryParams, args map[string]any) string {
	var tail strings.Builder

	if slices.Contains(repo.columns, params.SortBy) && params.SortDir != "" {
		fmt.Fprintf(&tail, " ORDER BY %s.%s %s", repo.table, params.SortBy, params.SortDir)

		if params.SortBy != repo.primaryColumn {
			fmt.Fprintf(&tail, ", %s.%s", repo.table, repo.primaryColumn)
		}
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		tail.WriteString(" LIMIT :limit")
	}

	if params.Page > 0 && params.Limit > 0 {
		args["offset"] = (params.Page - 1) * params.Limit
		tail.WriteString(" OFFSET :offset")
	}

	return tail.String()
}

func (repo *Repository[T]) selectList(columns ...string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(columns) > 0 && !slices.Contains(columns, col) {
			continue
		}

		selected = append(selected, repo.table+"."+col)
	}

	return strings.Join(selected, ", ")
}

func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()

	if where == "" {
		return where, map[string]any{}
	}

	return " WHERE " + where, args
}

func columnsOf(reflectType reflect.Type) []string {
	var columns []string

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, columnsOf(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
