package awsinventory

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/posturescan/posturescan/internal/models"
)

// ListUsers returns all IAM users in the account. The ListUsers paginator
// handles accounts with many users.
func (a *AWSInventory) ListUsers(ctx context.Context) ([]models.IAMUser, error) {
	paginator := iamsvc.NewListUsersPaginator(a.global.IAM, &iamsvc.ListUsersInput{})
	var users []models.IAMUser
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list IAM users: %w", err)
		}
		for _, u := range page.Users {
			users = append(users, models.IAMUser{UserName: aws.ToString(u.UserName)})
		}
	}
	return users, nil
}

// ListMFADevices returns the MFA devices registered to one IAM user.
// A user with no devices returns an empty slice.
func (a *AWSInventory) ListMFADevices(ctx context.Context, userName string) ([]models.MFADevice, error) {
	out, err := a.global.IAM.ListMFADevices(ctx, &iamsvc.ListMFADevicesInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return nil, fmt.Errorf("list MFA devices for user %q: %w", userName, err)
	}

	devices := make([]models.MFADevice, 0, len(out.MFADevices))
	for _, d := range out.MFADevices {
		devices = append(devices, models.MFADevice{SerialNumber: aws.ToString(d.SerialNumber)})
	}
	return devices, nil
}

// ListAccessKeys returns the access keys belonging to one IAM user.
func (a *AWSInventory) ListAccessKeys(ctx context.Context, userName string) ([]models.AccessKey, error) {
	out, err := a.global.IAM.ListAccessKeys(ctx, &iamsvc.ListAccessKeysInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return nil, fmt.Errorf("list access keys for user %q: %w", userName, err)
	}

	keys := make([]models.AccessKey, 0, len(out.AccessKeyMetadata))
	for _, k := range out.AccessKeyMetadata {
		keys = append(keys, models.AccessKey{
			ID:       aws.ToString(k.AccessKeyId),
			UserName: aws.ToString(k.UserName),
			Active:   k.Status == iamtypes.StatusTypeActive,
		})
	}
	return keys, nil
}

// AccessKeyLastUsed returns the last-used timestamp for an access key, or a
// nil time when the key has never been used. Callers treat an error as
// "lookup unavailable" and skip the key.
func (a *AWSInventory) AccessKeyLastUsed(ctx context.Context, keyID string) (*time.Time, error) {
	out, err := a.global.IAM.GetAccessKeyLastUsed(ctx, &iamsvc.GetAccessKeyLastUsedInput{
		AccessKeyId: aws.String(keyID),
	})
	if err != nil {
		return nil, fmt.Errorf("get last-used for access key %q: %w", keyID, err)
	}
	if out.AccessKeyLastUsed == nil || out.AccessKeyLastUsed.LastUsedDate == nil {
		// The API omits LastUsedDate for keys that have never been used.
		return nil, nil
	}
	t := *out.AccessKeyLastUsed.LastUsedDate
	return &t, nil
}

// RootAccountSummary retrieves the IAM account summary and reports whether
// the root account has active access keys and whether MFA is enabled.
// AccountAccessKeysPresent is the number of root access keys;
// AccountMFAEnabled is 1 when MFA is enabled on root.
func (a *AWSInventory) RootAccountSummary(ctx context.Context) (models.RootAccountSummary, error) {
	out, err := a.global.IAM.GetAccountSummary(ctx, &iamsvc.GetAccountSummaryInput{})
	if err != nil {
		return models.RootAccountSummary{}, fmt.Errorf("get IAM account summary: %w", err)
	}
	return models.RootAccountSummary{
		HasAccessKeys: out.SummaryMap["AccountAccessKeysPresent"] > 0,
		MFAEnabled:    out.SummaryMap["AccountMFAEnabled"] > 0,
		DataAvailable: true,
	}, nil
}
