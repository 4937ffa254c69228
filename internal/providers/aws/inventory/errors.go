package awsinventory

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/posturescan/posturescan/internal/inventory"
)

// accessDeniedCodes are the API error codes AWS services return when the
// scanning credentials lack permission for the requested operation. The exact
// code varies per service.
var accessDeniedCodes = map[string]bool{
	"AccessDenied":          true,
	"AccessDeniedException": true,
	"UnauthorizedOperation": true,
	"AuthorizationError":    true,
}

// wrapAccessDenied converts an AWS authorization failure into an error
// wrapping inventory.ErrAccessDenied so checks can detect it with errors.Is.
// Any other error is returned unchanged.
func wrapAccessDenied(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && accessDeniedCodes[apiErr.ErrorCode()] {
		return fmt.Errorf("%w: %s", inventory.ErrAccessDenied, apiErr.ErrorMessage())
	}
	return err
}

// hasErrorCode reports whether err is an AWS API error with the given code.
func hasErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}
