package model

// ErrorCode classifies why a resolution did not produce a profile.
type ErrorCode string

const (
	// ErrNotFound means every strategy ran and no candidate validated.
	ErrNotFound ErrorCode = "NotFound"
	// ErrSearchUnavailable means every strategy's search call failed.
	ErrSearchUnavailable ErrorCode = "SearchUnavailable"
	// ErrInvalidQuery means the query had no usable name.
	ErrInvalidQuery ErrorCode = "InvalidQuery"
	// ErrInternal means the resolution aborted unexpectedly (recovered panic).
	ErrInternal ErrorCode = "Internal"
)

// SearchResult is the outcome of resolving one Query. It is built once by
// Found or Failed and treated as immutable afterwards.
type SearchResult struct {
	Success           bool      `json:"success"`
	ProfileURL        string    `json:"profile_url,omitempty"`
	Title             string    `json:"title,omitempty"`
	Description       string    `json:"description,omitempty"`
	JobTitleExtracted string    `json:"job_title_extracted,omitempty"`
	Location          string    `json:"location,omitempty"`
	Connections       string    `json:"connections,omitempty"`
	CompanyExtracted  string    `json:"company_extracted,omitempty"`
	NameExtracted     string    `json:"name_extracted,omitempty"`
	QueryUsed         string    `json:"query_used,omitempty"`
	StrategyIndex     int       `json:"strategy_index,omitempty"`
	Error             ErrorCode `json:"error,omitempty"`
}

// Found builds a successful result from the accepted hit and its strategy.
func Found(s Strategy, hit RawHit, p ExtractedProfile) SearchResult {
	return SearchResult{
		Success:           true,
		ProfileURL:        hit.URL,
		Title:             hit.Title,
		Description:       hit.Snippet,
		JobTitleExtracted: p.JobTitle,
		Location:          p.Location,
		Connections:       p.Connections,
		CompanyExtracted:  p.Company,
		NameExtracted:     p.NameExtracted,
		QueryUsed:         s.Query,
		StrategyIndex:     s.Index,
	}
}

// Failed builds an unsuccessful result carrying only the error code.
func Failed(code ErrorCode) SearchResult {
	return SearchResult{Error: code}
}
