// Package dsl parses the small column-selection expressions accepted by
// the dataset stats API and the inspect tool, e.g.
//
//	select age, weight where diabetes = 1 limit 5000
package dsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Clause is a single numeric row filter.
type Clause struct {
	Field    string
	Operator string
	Value    float64
}

// Query is a parsed selection expression.
type Query struct {
	SelectFields []string
	Filters      []Clause
	Limit        int
}

var (
	selectRegex = regexp.MustCompile(`select\s+([a-zA-Z0-9_,\s*]+?)(?:\s+where|\s+limit|$)`)
	whereRegex  = regexp.MustCompile(`where\s+(.+?)(?:\s+limit|$)`)
	limitRegex  = regexp.MustCompile(`limit\s+(\d+)`)
	filterRegex = regexp.MustCompile(`([a-zA-Z0-9_]+)\s*(>=|<=|!=|=|>|<)\s*(-?[0-9.]+)`)
)

// Parse reads a selection expression. `select *` (or an empty field list)
// selects every column.
func Parse(input string) (Query, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if !strings.HasPrefix(input, "select") {
		return Query{}, fmt.Errorf("expression must start with select")
	}

	var query Query

	selectMatch := selectRegex.FindStringSubmatch(input)
	if len(selectMatch) < 2 {
		return Query{}, fmt.Errorf("missing select fields")
	}
	for _, field := range strings.Split(selectMatch[1], ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if field == "*" {
			query.SelectFields = nil
			break
		}
		query.SelectFields = append(query.SelectFields, field)
	}

	if whereMatch := whereRegex.FindStringSubmatch(input); len(whereMatch) >= 2 {
		for _, match := range filterRegex.FindAllStringSubmatch(whereMatch[1], -1) {
			value, err := strconv.ParseFloat(strings.TrimSpace(match[3]), 64)
			if err != nil {
				return Query{}, fmt.Errorf("filter on %s: %w", match[1], err)
			}
			query.Filters = append(query.Filters, Clause{
				Field:    strings.TrimSpace(match[1]),
				Operator: match[2],
				Value:    value,
			})
		}
	}

	if limitMatch := limitRegex.FindStringSubmatch(input); len(limitMatch) >= 2 {
		limit, err := strconv.Atoi(limitMatch[1])
		if err != nil {
			return Query{}, fmt.Errorf("invalid limit: %w", err)
		}
		query.Limit = limit
	}

	return query, nil
}

// Match evaluates every filter clause against a value lookup.
func (q Query) Match(lookup func(field string) (float64, bool)) (bool, error) {
	for _, clause := range q.Filters {
		v, ok := lookup(clause.Field)
		if !ok {
			return false, fmt.Errorf("unknown filter field %q", clause.Field)
		}
		if !clause.matches(v) {
			return false, nil
		}
	}
	return true, nil
}

func (c Clause) matches(v float64) bool {
	switch c.Operator {
	case "=":
		return v == c.Value
	case "!=":
		return v != c.Value
	case ">":
		return v > c.Value
	case "<":
		return v < c.Value
	case ">=":
		return v >= c.Value
	case "<=":
		return v <= c.Value
	}
	return false
}
