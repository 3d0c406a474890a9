package model

// Page is the paginated metadata response shape shared by the harvest and
// filter endpoints.
type Page struct {
	Data         []Record `json:"data"`
	PageNumber   int      `json:"page_number"`
	PageSize     int      `json:"page_size"`
	TotalRecords int      `json:"total_records"`
	TotalPages   int      `json:"total_pages"`
	SessionID    string   `json:"session_id"`
}

// TagPage is one page of tag-query results from the talkdesk container.
// ContinuationToken is nil when the query is exhausted.
type TagPage struct {
	Data              []map[string]string `json:"data"`
	ContinuationToken *string             `json:"continuation_token"`
}
