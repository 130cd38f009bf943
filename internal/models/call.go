package models

// Workbook column names, in file order. The header row of the backing
// workbook must match this list exactly.
const (
	ColumnCallID              = "Call_ID"
	ColumnCustomerName        = "Customer_Name"
	ColumnPhoneNumber         = "Phone_Number"
	ColumnPolicyNumber        = "Policy_Number"
	ColumnQuestionAsked       = "Question_Asked"
	ColumnCustomerResponse    = "Customer_Response"
	ColumnResponseType        = "Response_Type"
	ColumnCallStatus          = "Call_Status"
	ColumnConfidenceScore     = "Confidence_Score"
	ColumnAgentActionRequired = "Agent_Action_Required"
)

// Columns returns the workbook header in column order.
func Columns() []string {
	return []string{
		ColumnCallID,
		ColumnCustomerName,
		ColumnPhoneNumber,
		ColumnPolicyNumber,
		ColumnQuestionAsked,
		ColumnCustomerResponse,
		ColumnResponseType,
		ColumnCallStatus,
		ColumnConfidenceScore,
		ColumnAgentActionRequired,
	}
}

// CallRecord is one call-log entry. CallID is the primary key.
type CallRecord struct {
	CallID              int
	CustomerName        string
	PhoneNumber         string
	PolicyNumber        string
	QuestionAsked       string
	CustomerResponse    string
	ResponseType        string
	CallStatus          string
	ConfidenceScore     float64
	AgentActionRequired string
}

// CallPatch is a partial update. Nil fields are left untouched by Apply.
// The primary key is not patchable.
type CallPatch struct {
	CustomerName        *string
	PhoneNumber         *string
	PolicyNumber        *string
	QuestionAsked       *string
	CustomerResponse    *string
	ResponseType        *string
	CallStatus          *string
	ConfidenceScore     *float64
	AgentActionRequired *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p CallPatch) IsEmpty() bool {
	return p.CustomerName == nil &&
		p.PhoneNumber == nil &&
		p.PolicyNumber == nil &&
		p.QuestionAsked == nil &&
		p.CustomerResponse == nil &&
		p.ResponseType == nil &&
		p.CallStatus == nil &&
		p.ConfidenceScore == nil &&
		p.AgentActionRequired == nil
}

// Apply returns a copy of rec with the supplied patch fields merged in.
func (p CallPatch) Apply(rec CallRecord) CallRecord {
	merged := rec
	if p.CustomerName != nil {
		merged.CustomerName = *p.CustomerName
	}
	if p.PhoneNumber != nil {
		merged.PhoneNumber = *p.PhoneNumber
	}
	if p.PolicyNumber != nil {
		merged.PolicyNumber = *p.PolicyNumber
	}
	if p.QuestionAsked != nil {
		merged.QuestionAsked = *p.QuestionAsked
	}
	if p.CustomerResponse != nil {
		merged.CustomerResponse = *p.CustomerResponse
	}
	if p.ResponseType != nil {
		merged.ResponseType = *p.ResponseType
	}
	if p.CallStatus != nil {
		merged.CallStatus = *p.CallStatus
	}
	if p.ConfidenceScore != nil {
		merged.ConfidenceScore = *p.ConfidenceScore
	}
	if p.AgentActionRequired != nil {
		merged.AgentActionRequired = *p.AgentActionRequired
	}
	return merged
}
