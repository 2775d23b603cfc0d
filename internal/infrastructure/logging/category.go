package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	Internal        Category = "Internal"
	Mongo           Category = "Mongo"
	Assistant       Category = "Assistant"
	Sync            Category = "Sync"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// Assistant
	Pipeline   SubCategory = "Pipeline"
	Suggestion SubCategory = "Suggestion"
	AuditTrail SubCategory = "AuditTrail"

	// Sync
	Reconcile SubCategory = "Reconcile"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	ErrorMessage ExtraKey = "ErrorMessage"
	UserId       ExtraKey = "UserId"
	TableName    ExtraKey = "TableName"
	RecordId     ExtraKey = "RecordId"
	ActionLabel  ExtraKey = "ActionLabel"
	BatchSize    ExtraKey = "BatchSize"
)
