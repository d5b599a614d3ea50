package domain

// ExplanationRequest asks for a description of what a function does.
type ExplanationRequest struct {
	FunctionName string `json:"functionName"`
	Code         string `json:"code"`
	Context      string `json:"context,omitempty"`
}

// Validate checks the required fields are present.
func (r ExplanationRequest) Validate() error {
	if r.FunctionName == "" || r.Code == "" {
		return ErrMissingFields("functionName", "code")
	}
	return nil
}

// Explanation is a generated description of a function.
// The cached copy is identical to the fresh one except for Cached.
type Explanation struct {
	FunctionName string `json:"functionName"`
	How          string `json:"how"`
	Provider     string `json:"provider,omitempty"`
	Timestamp    int64  `json:"timestamp"`
	Cached       bool   `json:"cached"`
}

// UsageRequest asks where and why a function is used.
type UsageRequest struct {
	FunctionName string `json:"functionName"`
	UsageContext string `json:"usageContext"`
	CodeSnippets string `json:"codeSnippets,omitempty"`
}

// Validate checks the required fields are present.
func (r UsageRequest) Validate() error {
	if r.FunctionName == "" || r.UsageContext == "" {
		return ErrMissingFields("functionName", "usageContext")
	}
	return nil
}

// UsageExplanation is a generated description of a function's call sites.
type UsageExplanation struct {
	FunctionName string `json:"functionName"`
	Where        string `json:"where"`
	Provider     string `json:"provider,omitempty"`
	Timestamp    int64  `json:"timestamp"`
	Cached       bool   `json:"cached"`
}
