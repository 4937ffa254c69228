package awsinventory

import (
	"context"
	"fmt"

	guardduty "github.com/aws/aws-sdk-go-v2/service/guardduty"
	guarddutytypes "github.com/aws/aws-sdk-go-v2/service/guardduty/types"

	"github.com/posturescan/posturescan/internal/models"
)

// GuardDutyStatus reports, per audited region, whether an enabled GuardDuty
// detector exists. A region with no detector IDs is not enabled; when a
// detector exists, GetDetector verifies its status is ENABLED.
func (a *AWSInventory) GuardDutyStatus(ctx context.Context) ([]models.DetectorStatus, error) {
	statuses := make([]models.DetectorStatus, 0, len(a.regions))
	for _, region := range a.regions {
		client := a.regional[region].GuardDuty

		listOut, err := client.ListDetectors(ctx, &guardduty.ListDetectorsInput{})
		if err != nil {
			return nil, fmt.Errorf("list GuardDuty detectors in %s: %w", region, err)
		}
		if len(listOut.DetectorIds) == 0 {
			statuses = append(statuses, models.DetectorStatus{Region: region, Enabled: false})
			continue
		}

		detOut, err := client.GetDetector(ctx, &guardduty.GetDetectorInput{
			DetectorId: &listOut.DetectorIds[0],
		})
		if err != nil {
			return nil, fmt.Errorf("get GuardDuty detector in %s: %w", region, err)
		}
		statuses = append(statuses, models.DetectorStatus{
			Region:  region,
			Enabled: detOut.Status == guarddutytypes.DetectorStatusEnabled,
		})
	}
	return statuses, nil
}
