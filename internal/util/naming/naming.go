package naming

import "fmt"

// Naming functions for account resources.
// Derived names are deterministic so repeated runs against the same
// account produce the same Terraform state resources and local profiles.

// StateBucket returns the Terraform state bucket name for an account.
// The account-id suffix keeps the globally scoped bucket name unique
// across organizations that reuse account names.
func StateBucket(accountName, accountID string) string {
	return fmt.Sprintf("tf-state-%s-%s", accountName, idSuffix(accountID))
}

// LockTable returns the DynamoDB lock table name for an account.
func LockTable(accountName string) string {
	return fmt.Sprintf("tf-locks-%s", accountName)
}

// CredentialProfile returns the local shared-credentials profile name
// for an account's CLI automation user.
func CredentialProfile(accountName string) string {
	return fmt.Sprintf("tf-user-%s", accountName)
}

// ConsoleSignInURL returns the account-scoped console sign-in URL.
func ConsoleSignInURL(accountID string) string {
	return fmt.Sprintf("https://%s.signin.aws.amazon.com/console", accountID)
}

// idSuffix returns the last six characters of an account ID.
func idSuffix(accountID string) string {
	if len(accountID) <= 6 {
		return accountID
	}
	return accountID[len(accountID)-6:]
}
