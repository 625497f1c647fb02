// Package constants defines application-wide constants.
package constants

const (
	// DefaultPage is the default page number for paginated listings.
	DefaultPage = 1
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 20
	// MaxPageSize caps the page size a caller may request.
	MaxPageSize = 100

	// DefaultTriageBatchSize is the number of new tickets handed to an
	// agent per triage round when the caller does not specify one.
	DefaultTriageBatchSize = 3

	// MaxTitleLength bounds ticket titles.
	MaxTitleLength = 200
	// MaxContentLength bounds ticket descriptions and activity content.
	MaxContentLength = 10000
)

// Gin context keys set by the actor middleware.
const (
	CtxActorType  = "actor_type"
	CtxActorName  = "actor_name"
	CtxReporterID = "reporter_id"
)
