package database

import (
	"fmt"
	"strings"
	"time"
)

const (
	columnProjectID = "project_id"
	columnLogDate   = "log_date"
)

const dateLayout = "2006-01-02"

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	conditions []string
	args       []interface{}
	argCount   int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		conditions: []string{},
		args:       []interface{}{},
		argCount:   1,
	}
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// AddDateRange adds inclusive bounds on a DATE column. Either bound may be
// empty; non-empty bounds must be YYYY-MM-DD.
func (qb *QueryBuilder) AddDateRange(column, from, to string) error {
	if from != "" {
		d, err := parseDate(from)
		if err != nil {
			return fmt.Errorf("invalid from date: %w", err)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s >= $%d", column, qb.argCount))
		qb.args = append(qb.args, d)
		qb.argCount++
	}

	if to != "" {
		d, err := parseDate(to)
		if err != nil {
			return fmt.Errorf("invalid to date: %w", err)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s <= $%d", column, qb.argCount))
		qb.args = append(qb.args, d)
		qb.argCount++
	}

	return nil
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

func (qb *QueryBuilder) NextArgNum() int {
	return qb.argCount
}

// Helper functions

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
