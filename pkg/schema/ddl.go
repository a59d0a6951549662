package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns column names of a model in the order of its fields.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if col := t.Field(i).Tag.Get("db"); col != "" {
			res = append(res, col)
		}
	}
	return res
}

// Tag DDL methods
func (t Tag) TableDDL() string {
	return generateDDL(t, t.TableName())
}

func (t Tag) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_tags_name ON tags(name);",
		"CREATE INDEX idx_tags_document_id ON tags(document_id);",
		"CREATE INDEX idx_tags_parent_id ON tags(parent_id);",
	}
}

func (t Tag) TableName() string {
	return "tags"
}

// MergeRule DDL methods
func (mr MergeRule) TableDDL() string {
	return generateDDL(mr, mr.TableName())
}

func (mr MergeRule) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX idx_merge_rules_source_scope " +
			"ON merge_rules(source_name, scope);",
	}
}

func (mr MergeRule) TableName() string {
	return "merge_rules"
}

// ManagementEvent DDL methods
func (me ManagementEvent) TableDDL() string {
	return generateDDL(me, me.TableName())
}

func (me ManagementEvent) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_management_events_created_at " +
			"ON management_events(created_at);",
		"CREATE INDEX idx_management_events_action ON management_events(action);",
	}
}

func (me ManagementEvent) TableName() string {
	return "management_events"
}

// SchemaVersion DDL methods
func (sv SchemaVersion) TableDDL() string {
	return generateDDL(sv, sv.TableName())
}

func (sv SchemaVersion) IndexDDL() []string {
	return []string{}
}

func (sv SchemaVersion) TableName() string {
	return "schema_versions"
}
