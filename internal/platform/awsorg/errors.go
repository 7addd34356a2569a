package awsorg

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/tfbootstrap/tfbootstrap/pkg/cloud"
)

// translate maps an AWS API error onto the normalized cloud.APIError
// codes the provisioning layer classifies on, wrapping it in a message
// built from format and args. Non-API errors are wrapped unchanged.
func translate(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", msg, err)
	}

	code := normalizeCode(apiErr.ErrorCode())
	if code == "" {
		return fmt.Errorf("%s: %w", msg, err)
	}

	return fmt.Errorf("%s: %w", msg, cloud.NewAPIError(code, "%s", apiErr.ErrorMessage()))
}

// normalizeCode collapses the per-service spellings of common error
// conditions. Returns empty for codes the provisioning layer has no
// special handling for.
func normalizeCode(code string) string {
	switch code {
	case "EntityAlreadyExists", "EntityAlreadyExistsException", "DuplicateAccountException":
		return cloud.CodeAlreadyExists
	case "NoSuchEntity", "NoSuchEntityException", "AccountNotFoundException", "CreateAccountStatusNotFoundException":
		return cloud.CodeNotFound
	case "Throttling", "ThrottlingException", "TooManyRequestsException", "RequestLimitExceeded":
		return cloud.CodeThrottled
	case "AccessDenied", "AccessDeniedException":
		return cloud.CodeAccessDenied
	case "ServiceUnavailable", "ServiceUnavailableException", "ServiceException":
		return cloud.CodeServiceUnavailable
	default:
		return ""
	}
}
