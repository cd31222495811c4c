package api

import "github.com/starford/obi/internal/models"

// Response types referenced by the swag annotations on the handlers.
type (
	ReadResponse    = models.ReadResult
	TocResponse     = models.TocResult
	LinksResponse   = models.LinksResult
	MapResponse     = models.MapResult
	ListResponse    = models.ListResult
	QueryResponse   = models.QueryResult
	SearchResponse  = models.SearchResult
	RecentResponse  = models.RecentResult
	UnreadResponse  = models.UnreadResult
	SchemaResponse  = models.SchemaResult
	ContextResponse = models.ContextResult
)
