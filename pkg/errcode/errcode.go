package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBUnsupportedBackendError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaVersionError
	SchemaMissingError

	// Store errors
	StoreUnavailableError
	StoreQueryError
	StoreWriteError

	// Optimize errors
	OptimizeNotConnectedError
	OptimizeVacuumError

	// Detection errors
	DetectCancelledError

	// Curation errors
	CurateValidationError
	CurateTagNotFoundError
	CurateRuleNotFoundError
	CurateItemError
	CurateAllItemsFailedError
	CurateAuditError

	// Taxonomy import/export errors
	TaxonomyDecodeError
	TaxonomyEncodeError
	TaxonomyValidationError
	TaxonomyDocumentRefError
	TaxonomyImportError
)
