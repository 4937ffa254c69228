package awsinventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/posturescan/posturescan/internal/models"
)

// ListDBInstances lists all RDS instances in every audited region together
// with their public-accessibility flag.
func (a *AWSInventory) ListDBInstances(ctx context.Context) ([]models.DBInstance, error) {
	var instances []models.DBInstance
	for _, region := range a.regions {
		out, err := a.regional[region].RDS.DescribeDBInstances(ctx, &rdssvc.DescribeDBInstancesInput{})
		if err != nil {
			return nil, fmt.Errorf("describe DB instances in %s: %w", region, err)
		}
		for _, db := range out.DBInstances {
			instances = append(instances, models.DBInstance{
				Identifier:         aws.ToString(db.DBInstanceIdentifier),
				Engine:             aws.ToString(db.Engine),
				PubliclyAccessible: aws.ToBool(db.PubliclyAccessible),
				Region:             region,
			})
		}
	}
	return instances, nil
}
