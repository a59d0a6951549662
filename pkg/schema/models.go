// Package schema provides database schema models for gntag.
// The same models create tables through GORM on PostgreSQL and through
// generated DDL on SQLite.
package schema

import (
	"time"
)

// DDLGenerator defines how Go models generate portable SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Tag is a tag attached to a document.
type Tag struct {
	// ID is a random UUID assigned on creation.
	ID string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY" gorm:"primaryKey;type:varchar(36)"`

	// Name is free text, several rows can share the same name.
	Name string `db:"name" ddl:"VARCHAR(255) NOT NULL" gorm:"type:varchar(255);not null;index"`

	// Type is either 'parent' or 'child'.
	Type string `db:"type" ddl:"VARCHAR(10) NOT NULL" gorm:"type:varchar(10);not null"`

	// Confidence of automatic extraction from 0 to 1, NULL if unknown.
	Confidence *float64 `db:"confidence" ddl:"DOUBLE PRECISION"`

	// Source is 'auto', 'manual' or 'import'.
	Source string `db:"source" ddl:"VARCHAR(10) NOT NULL DEFAULT 'auto'" gorm:"type:varchar(10);not null;default:auto"`

	// DocumentID refers to the owning document.
	DocumentID string `db:"document_id" ddl:"VARCHAR(255) NOT NULL" gorm:"type:varchar(255);not null;index"`

	// ParentID refers to a parent tag, only children have it.
	ParentID *string `db:"parent_id" ddl:"VARCHAR(36)" gorm:"type:varchar(36);index"`

	// Synonyms is a JSON list of alternative names.
	Synonyms string `db:"synonyms" ddl:"TEXT NOT NULL DEFAULT '[]'" gorm:"not null;default:'[]'"`

	// CreatedAt is the time of creation in UTC.
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP NOT NULL" gorm:"not null"`
}

// MergeRule is a learned mapping of a source name to a canonical name.
// There is only one rule for a source name within a scope.
type MergeRule struct {
	// ID is UUID v5 generated from the scope and the source name.
	ID string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY" gorm:"primaryKey;type:varchar(36)"`

	// SourceName is the name absorbed by a merge.
	SourceName string `db:"source_name" ddl:"VARCHAR(255) NOT NULL" gorm:"type:varchar(255);not null;uniqueIndex:idx_merge_rules_source_scope,priority:1"`

	// CanonicalName is the name that survived the merge.
	CanonicalName string `db:"canonical_name" ddl:"VARCHAR(255) NOT NULL" gorm:"type:varchar(255);not null"`

	// Scope separates contexts where the same source name maps differently.
	Scope string `db:"scope" ddl:"VARCHAR(100) NOT NULL" gorm:"type:varchar(100);not null;uniqueIndex:idx_merge_rules_source_scope,priority:2"`

	// UsageCount is the number of merges that applied the rule.
	UsageCount int `db:"usage_count" ddl:"INTEGER NOT NULL DEFAULT 1" gorm:"not null;default:1"`

	// CreatedBy is the author of the rule.
	CreatedBy string `db:"created_by" ddl:"VARCHAR(255)" gorm:"type:varchar(255)"`

	// CreatedAt is the time the rule was learned first.
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP NOT NULL" gorm:"not null"`
}

// ManagementEvent is an append-only record of a curation decision.
type ManagementEvent struct {
	// ID is a random UUID.
	ID string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY" gorm:"primaryKey;type:varchar(36)"`

	// CreatedAt is the time of the decision.
	CreatedAt time.Time `db:"created_at" ddl:"TIMESTAMP NOT NULL" gorm:"not null;index"`

	// Action is one of the curation actions.
	Action string `db:"action" ddl:"VARCHAR(40) NOT NULL" gorm:"type:varchar(40);not null;index"`

	// Tags is a JSON list of snapshots of involved tags.
	Tags string `db:"tags" ddl:"TEXT NOT NULL" gorm:"not null"`

	// Decision is a JSON object with what the curator chose.
	Decision string `db:"decision" ddl:"TEXT NOT NULL" gorm:"not null"`

	// Rationale is the free text explanation of the decision.
	Rationale string `db:"rationale" ddl:"TEXT"`

	// DecisionMS is the time to decision in milliseconds.
	DecisionMS int64 `db:"decision_ms" ddl:"BIGINT NOT NULL DEFAULT 0" gorm:"column:decision_ms;not null;default:0"`
}

// SchemaVersion tracks database schema migrations.
type SchemaVersion struct {
	Version     string    `db:"version"     ddl:"VARCHAR(50) PRIMARY KEY" gorm:"primaryKey;type:varchar(50)"`
	Description string    `db:"description" ddl:"TEXT"`
	AppliedAt   time.Time `db:"applied_at"  ddl:"TIMESTAMP NOT NULL"`
}
