package diagnostic

// Diagnostic codes emitted by the engine.
const (
	CodeRequiredUnresolved    = "required_unresolved"
	CodeConditionalRequired   = "conditional_required"
	CodeDanglingCondition     = "dangling_condition"
	CodeUnknownHeuristic      = "unknown_heuristic"
	CodeHeuristicFailed       = "heuristic_failed"
	CodeInvalidRule           = "invalid_rule"
	CodeInvalidPath           = "invalid_path"
	CodePoolAllocation        = "pool_allocation"
	CodePoolAllocationFailed  = "pool_allocation_failed"
	CodeSchemaUnavailable     = "schema_unavailable"
	CodeShapeConflict         = "shape_conflict"
	CodeFormatMismatch        = "format_mismatch"
	CodeDefaultTableFallback  = "default_table_fallback"
	CodeUnknownCategoryFormat = "unknown_category_format"
	CodeCategoryWithheld      = "category_withheld"
	CodeUnknownAttribute      = "unknown_attribute"
)
