package schema

import (
	"gorm.io/gorm"
)

// Version is the version of the current schema, it is recorded in
// schema_versions when the schema is created.
const Version = "v0.1.0"

// AllModels returns all schema models in the order of their creation.
func AllModels() []DDLGenerator {
	return []DDLGenerator{
		&Tag{},
		&MergeRule{},
		&ManagementEvent{},
		&SchemaVersion{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	models := AllModels()
	res := make([]any, len(models))
	for i := range models {
		res[i] = models[i]
	}
	return db.AutoMigrate(res...)
}

// DDL returns statements that create all tables and indexes.
func DDL() []string {
	var res []string
	for _, m := range AllModels() {
		res = append(res, m.TableDDL())
		res = append(res, m.IndexDDL()...)
	}
	return res
}
