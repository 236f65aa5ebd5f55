package batch

import (
	"fmt"
	"sync"

	"gorm.io/gorm/schema"
)

// Record is one flat incoming record, as decoded from a JSON payload.
type Record map[string]any

// FieldMapping maps incoming record field names to target column names.
// Only mapped columns are ever written by UpdateItems.
type FieldMapping map[string]string

// Setter writes one incoming value into a column of the entity. Setters own
// any type coercion (JSON numbers arrive as float64).
type Setter[T any] func(entity *T, value any)

// Collection describes the persistent collection a batch operation acts on:
// the table, the columns the model declares, and the statically declared
// setter table used to apply mapped fields. It is built once at startup so
// schema mistakes surface before any request is served.
type Collection[T any] struct {
	table   string
	columns map[string]struct{}
	setters map[string]Setter[T]
}

// NewCollection parses the GORM model of T and validates the setter table
// against its declared columns. A setter for a column the model does not
// declare is a programming error and fails construction.
func NewCollection[T any](setters map[string]Setter[T]) (*Collection[T], error) {
	parsed, err := schema.Parse(new(T), &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse model schema: %w", err)
	}

	columns := make(map[string]struct{}, len(parsed.Fields))
	for _, field := range parsed.Fields {
		if field.DBName != "" {
			columns[field.DBName] = struct{}{}
		}
	}

	for column := range setters {
		if _, ok := columns[column]; !ok {
			return nil, fmt.Errorf("setter declared for unknown column '%s' in table %s", column, parsed.Table)
		}
	}

	return &Collection[T]{
		table:   parsed.Table,
		columns: columns,
		setters: setters,
	}, nil
}

// Table returns the table name of the collection.
func (c *Collection[T]) Table() string {
	return c.table
}

// HasColumn reports whether the model declares the given column.
func (c *Collection[T]) HasColumn(name string) bool {
	_, ok := c.columns[name]
	return ok
}

// CanSet reports whether a setter is declared for the given column.
func (c *Collection[T]) CanSet(column string) bool {
	_, ok := c.setters[column]
	return ok
}

// Set applies value to the given column of entity via the setter table.
// Columns without a setter are ignored (callers validate up front).
func (c *Collection[T]) Set(entity *T, column string, value any) {
	if setter, ok := c.setters[column]; ok {
		setter(entity, value)
	}
}
