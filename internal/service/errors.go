package service

import (
	"errors"
	"net/http"

	apperrors "github.com/spec-kit/academy-service/pkg/util"
)

// Error codes for the authentication taxonomy. Signin failures share one
// generic message so the response never reveals whether the account, the
// tenant membership, or the password was wrong. Signup conflicts stay
// specific: they help the user pick a different value and are not
// enumeration-sensitive.
const (
	CodeInvalidTenant      = "INVALID_TENANT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeDomainTaken        = "DOMAIN_TAKEN"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeStudentExists      = "STUDENT_EXISTS"
	CodeMissingField       = "MISSING_FIELD"
)

const invalidCredentialsMessage = "invalid email or password"

func errInvalidTenant() error {
	return apperrors.NewDomainError(CodeInvalidTenant, "academy not found", http.StatusUnauthorized, nil)
}

func errInvalidCredentials() error {
	return apperrors.NewDomainError(CodeInvalidCredentials, invalidCredentialsMessage, http.StatusUnauthorized, nil)
}

func errDomainTaken() error {
	return apperrors.NewConflict(CodeDomainTaken, "academy domain is already taken", nil)
}

func errEmailTaken() error {
	return apperrors.NewConflict(CodeEmailTaken, "an educator account with this email already exists", nil)
}

func errStudentExists() error {
	return apperrors.NewConflict(CodeStudentExists, "student already exists in this academy", nil)
}

func errMissingField(field string) error {
	return apperrors.NewDomainError(CodeMissingField, field+" is required", http.StatusBadRequest, nil)
}

// ErrorCode extracts the taxonomy code from an error, empty when not ours.
func ErrorCode(err error) string {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}
