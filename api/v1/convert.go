package v1

import (
	"time"

	"github.com/ivrlabs/callstore/internal/models"
	srvErrors "github.com/ivrlabs/callstore/pkg/errors"
)

// NewCallFromModel converts a models.CallRecord to an API CallRecord.
func NewCallFromModel(rec models.CallRecord) CallRecord {
	return CallRecord{
		CallID:              rec.CallID,
		CustomerName:        rec.CustomerName,
		PhoneNumber:         rec.PhoneNumber,
		PolicyNumber:        rec.PolicyNumber,
		QuestionAsked:       rec.QuestionAsked,
		CustomerResponse:    rec.CustomerResponse,
		ResponseType:        rec.ResponseType,
		CallStatus:          rec.CallStatus,
		ConfidenceScore:     rec.ConfidenceScore,
		AgentActionRequired: rec.AgentActionRequired,
	}
}

// ToModel converts the request to a domain record. An absent confidence score
// is a validation failure here because the domain type cannot represent
// absence.
func (r CallRequest) ToModel() (models.CallRecord, error) {
	if r.ConfidenceScore == nil {
		return models.CallRecord{}, srvErrors.NewValidationError(srvErrors.FieldViolation{
			Field: models.ColumnConfidenceScore,
			Rule:  srvErrors.RuleMissing,
		})
	}
	return models.CallRecord{
		CallID:              r.CallID,
		CustomerName:        r.CustomerName,
		PhoneNumber:         r.PhoneNumber,
		PolicyNumber:        r.PolicyNumber,
		QuestionAsked:       r.QuestionAsked,
		CustomerResponse:    r.CustomerResponse,
		ResponseType:        r.ResponseType,
		CallStatus:          r.CallStatus,
		ConfidenceScore:     *r.ConfidenceScore,
		AgentActionRequired: r.AgentActionRequired,
	}, nil
}

// ToModel converts the patch request to a domain patch.
func (r CallPatchRequest) ToModel() models.CallPatch {
	return models.CallPatch{
		CustomerName:        r.CustomerName,
		PhoneNumber:         r.PhoneNumber,
		PolicyNumber:        r.PolicyNumber,
		QuestionAsked:       r.QuestionAsked,
		CustomerResponse:    r.CustomerResponse,
		ResponseType:        r.ResponseType,
		CallStatus:          r.CallStatus,
		ConfidenceScore:     r.ConfidenceScore,
		AgentActionRequired: r.AgentActionRequired,
	}
}

// NewBackupStatus converts a models.BackupStatus to its API representation.
func NewBackupStatus(status models.BackupStatus) BackupStatus {
	s := BackupStatus{Status: string(status.State)}
	if !status.LastRun.IsZero() {
		lastRun := status.LastRun.UTC().Format(time.RFC3339)
		s.LastRun = &lastRun
	}
	if status.LastSnapshot != "" {
		snapshot := status.LastSnapshot
		s.LastSnapshot = &snapshot
	}
	if status.Error != nil {
		e := status.Error.Error()
		s.Error = &e
	}
	return s
}

// NewValidationError maps a typed validation error to the API envelope.
func NewValidationError(err *srvErrors.ValidationError) ValidationError {
	violations := make([]FieldViolation, 0, len(err.Violations))
	for _, v := range err.Violations {
		violations = append(violations, FieldViolation{Field: v.Field, Rule: v.Rule})
	}
	return ValidationError{
		Error:      "validation failed",
		Violations: violations,
	}
}
