// Package v1 defines the wire types of the call-record API and their
// conversions to and from the domain models.
package v1

// CallRecord is the API representation of one call record.
type CallRecord struct {
	CallID              int     `json:"callId"`
	CustomerName        string  `json:"customerName"`
	PhoneNumber         string  `json:"phoneNumber"`
	PolicyNumber        string  `json:"policyNumber"`
	QuestionAsked       string  `json:"questionAsked"`
	CustomerResponse    string  `json:"customerResponse"`
	ResponseType        string  `json:"responseType"`
	CallStatus          string  `json:"callStatus"`
	ConfidenceScore     float64 `json:"confidenceScore"`
	AgentActionRequired string  `json:"agentActionRequired"`
}

// CallRequest is the body of POST /calls and PUT /calls/{id}. ConfidenceScore
// is a pointer so an absent score can be told apart from a literal 0.
type CallRequest struct {
	CallID              int      `json:"callId"`
	CustomerName        string   `json:"customerName"`
	PhoneNumber         string   `json:"phoneNumber"`
	PolicyNumber        string   `json:"policyNumber"`
	QuestionAsked       string   `json:"questionAsked"`
	CustomerResponse    string   `json:"customerResponse"`
	ResponseType        string   `json:"responseType"`
	CallStatus          string   `json:"callStatus"`
	ConfidenceScore     *float64 `json:"confidenceScore"`
	AgentActionRequired string   `json:"agentActionRequired"`
}

// CallPatchRequest is the body of PATCH /calls/{id}. Absent fields keep their
// stored values. The call id is not patchable.
type CallPatchRequest struct {
	CustomerName        *string  `json:"customerName"`
	PhoneNumber         *string  `json:"phoneNumber"`
	PolicyNumber        *string  `json:"policyNumber"`
	QuestionAsked       *string  `json:"questionAsked"`
	CustomerResponse    *string  `json:"customerResponse"`
	ResponseType        *string  `json:"responseType"`
	CallStatus          *string  `json:"callStatus"`
	ConfidenceScore     *float64 `json:"confidenceScore"`
	AgentActionRequired *string  `json:"agentActionRequired"`
}

// CallListResponse is the paginated list envelope.
type CallListResponse struct {
	Page      int          `json:"page"`
	PageCount int          `json:"pageCount"`
	Total     int          `json:"total"`
	Calls     []CallRecord `json:"calls"`
}

// ListCallsParams are the recognized query parameters of GET /calls.
type ListCallsParams struct {
	Page           *int     `form:"page"`
	PageSize       *int     `form:"page_size"`
	Status         []string `form:"status"`
	ResponseType   []string `form:"response_type"`
	ActionRequired []string `form:"action_required"`
	MinConfidence  *float64 `form:"min_confidence"`
}

// Error is the generic error envelope.
type Error struct {
	Error string `json:"error"`
}

// FieldViolation is one field-level validation failure.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError carries field-level detail for 400 responses.
type ValidationError struct {
	Error      string           `json:"error"`
	Violations []FieldViolation `json:"violations"`
}

// BackupStatus reports the snapshot-rotation state.
type BackupStatus struct {
	Status       string  `json:"status"`
	LastRun      *string `json:"lastRun,omitempty"`
	LastSnapshot *string `json:"lastSnapshot,omitempty"`
	Error        *string `json:"error,omitempty"`
}

// Health is the liveness response.
type Health struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}
