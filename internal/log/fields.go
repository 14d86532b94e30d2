package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldTable      = "table"
	FieldRows       = "rows"
	FieldMember     = "member"
	FieldMatchDate  = "match_date"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldAmount     = "amount"
	FieldLossTotal  = "loss_total"
	FieldFundTotal  = "fund_total"
	FieldBalance    = "balance"
	FieldSettlement = "settlement_note"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentMatches = "matches"
	ComponentStorage = "storage"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)

// Operations defines standard operation names.
const (
	OpLoad      = "load"
	OpSave      = "save"
	OpAppend    = "append"
	OpExpand    = "expand"
	OpAggregate = "aggregate"
	OpSettle    = "settle"
	OpReport    = "report"
	OpSync      = "sync"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
