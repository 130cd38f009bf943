// Package validation checks candidate call records against the field rule
// set before they are admitted to the store.
//
// The rules are an explicit table, one entry per field, each tagged with a
// kind (mandatory-text, optional-text, bounded-float). Evaluation is a pure
// function over that table: no reflection, no side effects. Create and
// replace are checked with ValidateRecord against the full candidate; patch
// supplies ValidatePatch for the submitted fields, and the store re-checks
// the merged result with ValidateRecord so a patch can never blank a
// mandatory field or push a bounded value out of range.
package validation

import (
	"github.com/ivrlabs/callstore/internal/models"
	srvErrors "github.com/ivrlabs/callstore/pkg/errors"
)

// Kind tags a field rule.
type Kind string

const (
	KindMandatoryText Kind = "mandatory-text"
	KindOptionalText  Kind = "optional-text"
	KindBoundedFloat  Kind = "bounded-float"
)

// ConfidenceScore bounds (closed interval).
const (
	ConfidenceMin = 0.0
	ConfidenceMax = 1.0
)

type rule struct {
	field  string
	kind   Kind
	text   func(models.CallRecord) string
	number func(models.CallRecord) float64
	min    float64
	max    float64
}

// callRules is the per-field rule table. CallID is handled separately: it is
// the primary key and must be a positive integer on every full record.
var callRules = []rule{
	{
		field: models.ColumnCustomerName,
		kind:  KindMandatoryText,
		text:  func(r models.CallRecord) string { return r.CustomerName },
	},
	{
		field: models.ColumnPhoneNumber,
		kind:  KindMandatoryText,
		text:  func(r models.CallRecord) string { return r.PhoneNumber },
	},
	{
		field: models.ColumnPolicyNumber,
		kind:  KindOptionalText,
		text:  func(r models.CallRecord) string { return r.PolicyNumber },
	},
	{
		field: models.ColumnQuestionAsked,
		kind:  KindOptionalText,
		text:  func(r models.CallRecord) string { return r.QuestionAsked },
	},
	{
		field: models.ColumnCustomerResponse,
		kind:  KindOptionalText,
		text:  func(r models.CallRecord) string { return r.CustomerResponse },
	},
	{
		field: models.ColumnResponseType,
		kind:  KindOptionalText,
		text:  func(r models.CallRecord) string { return r.ResponseType },
	},
	{
		field: models.ColumnCallStatus,
		kind:  KindOptionalText,
		text:  func(r models.CallRecord) string { return r.CallStatus },
	},
	{
		field:  models.ColumnConfidenceScore,
		kind:   KindBoundedFloat,
		number: func(r models.CallRecord) float64 { return r.ConfidenceScore },
		min:    ConfidenceMin,
		max:    ConfidenceMax,
	},
	{
		field: models.ColumnAgentActionRequired,
		kind:  KindOptionalText,
		text:  func(r models.CallRecord) string { return r.AgentActionRequired },
	},
}

// ValidateRecord checks a full candidate record (create, replace, or a merged
// patch result). It returns a *errors.ValidationError listing every violation,
// or nil when the record satisfies all rules.
func ValidateRecord(rec models.CallRecord) error {
	var violations []srvErrors.FieldViolation

	if rec.CallID <= 0 {
		violations = append(violations, srvErrors.FieldViolation{
			Field: models.ColumnCallID,
			Rule:  srvErrors.RuleMissing,
		})
	}

	for _, r := range callRules {
		switch r.kind {
		case KindMandatoryText:
			if r.text(rec) == "" {
				violations = append(violations, srvErrors.FieldViolation{
					Field: r.field,
					Rule:  srvErrors.RuleMissing,
				})
			}
		case KindBoundedFloat:
			if v := r.number(rec); v < r.min || v > r.max {
				violations = append(violations, srvErrors.FieldViolation{
					Field: r.field,
					Rule:  srvErrors.RuleOutOfRange,
				})
			}
		case KindOptionalText:
			// nothing to check
		}
	}

	if len(violations) > 0 {
		return srvErrors.NewValidationError(violations...)
	}
	return nil
}

// ValidatePatch checks only the fields a patch supplies: a supplied mandatory
// field must not be blank and a supplied confidence score must stay in range.
func ValidatePatch(patch models.CallPatch) error {
	var violations []srvErrors.FieldViolation

	supplied := []struct {
		field string
		kind  Kind
		value *string
	}{
		{models.ColumnCustomerName, KindMandatoryText, patch.CustomerName},
		{models.ColumnPhoneNumber, KindMandatoryText, patch.PhoneNumber},
		{models.ColumnPolicyNumber, KindOptionalText, patch.PolicyNumber},
		{models.ColumnQuestionAsked, KindOptionalText, patch.QuestionAsked},
		{models.ColumnCustomerResponse, KindOptionalText, patch.CustomerResponse},
		{models.ColumnResponseType, KindOptionalText, patch.ResponseType},
		{models.ColumnCallStatus, KindOptionalText, patch.CallStatus},
		{models.ColumnAgentActionRequired, KindOptionalText, patch.AgentActionRequired},
	}

	for _, s := range supplied {
		if s.kind == KindMandatoryText && s.value != nil && *s.value == "" {
			violations = append(violations, srvErrors.FieldViolation{
				Field: s.field,
				Rule:  srvErrors.RuleMissing,
			})
		}
	}

	if patch.ConfidenceScore != nil {
		if v := *patch.ConfidenceScore; v < ConfidenceMin || v > ConfidenceMax {
			violations = append(violations, srvErrors.FieldViolation{
				Field: models.ColumnConfidenceScore,
				Rule:  srvErrors.RuleOutOfRange,
			})
		}
	}

	if len(violations) > 0 {
		return srvErrors.NewValidationError(violations...)
	}
	return nil
}
