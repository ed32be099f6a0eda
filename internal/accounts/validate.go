package accounts

import (
	"strings"

	"github.com/atinyakov/accountkeeper/internal/models"
)

// ValidateFields reports which fields make the account unusable: a blank
// login, or a blank or missing password on a local account. LDAP accounts never
// need a password. The record type itself is not checked.
func ValidateFields(a models.Account) models.ValidationErrors {
	var errs models.ValidationErrors
	if strings.TrimSpace(a.Login) == "" {
		errs.Login = true
	}
	if a.RecordType.IsLocal() && (a.Password == nil || strings.TrimSpace(*a.Password) == "") {
		errs.Password = true
	}
	return errs
}

// Validate reports whether a passes ValidateFields.
func Validate(a models.Account) bool {
	return !ValidateFields(a).Any()
}
