package model

// RawHit is a single ranked search engine result.
type RawHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ExtractedProfile holds attributes parsed from one RawHit. Empty fields are unset.
type ExtractedProfile struct {
	JobTitle      string `json:"job_title,omitempty"`
	Company       string `json:"company,omitempty"`
	Location      string `json:"location,omitempty"`
	Connections   string `json:"connections,omitempty"`
	Bio           string `json:"bio,omitempty"`
	NameExtracted string `json:"name_extracted,omitempty"`
}

// Verdict is the outcome of validating one candidate against a query.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
}

// Accept builds an accepting verdict.
func Accept(reason string) Verdict {
	return Verdict{Accepted: true, Reason: reason}
}

// Reject builds a rejecting verdict.
func Reject(reason string) Verdict {
	return Verdict{Accepted: false, Reason: reason}
}
