package awsinventory

import (
	"context"
	"fmt"

	configsvc "github.com/aws/aws-sdk-go-v2/service/configservice"

	"github.com/posturescan/posturescan/internal/models"
)

// ConfigRecorderStatus reports, per audited region, whether AWS Config has an
// actively recording configuration recorder.
func (a *AWSInventory) ConfigRecorderStatus(ctx context.Context) ([]models.RecorderStatus, error) {
	statuses := make([]models.RecorderStatus, 0, len(a.regions))
	for _, region := range a.regions {
		out, err := a.regional[region].Config.DescribeConfigurationRecorderStatus(ctx, &configsvc.DescribeConfigurationRecorderStatusInput{})
		if err != nil {
			return nil, fmt.Errorf("describe Config recorder status in %s: %w", region, err)
		}

		enabled := false
		for _, status := range out.ConfigurationRecordersStatus {
			if status.Recording {
				enabled = true
				break
			}
		}
		statuses = append(statuses, models.RecorderStatus{Region: region, Enabled: enabled})
	}
	return statuses, nil
}
