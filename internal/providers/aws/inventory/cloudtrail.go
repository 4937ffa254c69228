package awsinventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	cloudtrailtypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"

	"github.com/posturescan/posturescan/internal/models"
)

// LookupRootEvents returns up to max recent CloudTrail management events
// recorded for the root identity. CloudTrail event lookup is queried against
// the global client's region; the root identity is account-wide.
func (a *AWSInventory) LookupRootEvents(ctx context.Context, max int) ([]models.AuditEvent, error) {
	out, err := a.global.CloudTrail.LookupEvents(ctx, &cloudtrailsvc.LookupEventsInput{
		LookupAttributes: []cloudtrailtypes.LookupAttribute{
			{
				AttributeKey:   cloudtrailtypes.LookupAttributeKeyUsername,
				AttributeValue: aws.String("root"),
			},
		},
		MaxResults: aws.Int32(int32(max)),
	})
	if err != nil {
		return nil, fmt.Errorf("lookup root account events: %w", err)
	}

	events := make([]models.AuditEvent, 0, len(out.Events))
	for _, e := range out.Events {
		event := models.AuditEvent{
			EventName: aws.ToString(e.EventName),
			Username:  aws.ToString(e.Username),
		}
		if e.EventTime != nil {
			event.EventTime = *e.EventTime
		}
		events = append(events, event)
	}
	return events, nil
}

// TrailStatus calls DescribeTrails to determine whether at least one
// multi-region trail exists for the account. IncludeShadowTrails is false so
// only trails owned by this account are returned.
func (a *AWSInventory) TrailStatus(ctx context.Context) (models.TrailStatus, error) {
	out, err := a.global.CloudTrail.DescribeTrails(ctx, &cloudtrailsvc.DescribeTrailsInput{
		IncludeShadowTrails: aws.Bool(false),
	})
	if err != nil {
		return models.TrailStatus{}, fmt.Errorf("describe CloudTrail trails: %w", err)
	}

	for _, trail := range out.TrailList {
		if aws.ToBool(trail.IsMultiRegionTrail) {
			return models.TrailStatus{HasMultiRegionTrail: true}, nil
		}
	}
	return models.TrailStatus{HasMultiRegionTrail: false}, nil
}
