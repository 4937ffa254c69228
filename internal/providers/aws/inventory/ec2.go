package awsinventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/posturescan/posturescan/internal/models"
)

// ListIngressRules lists all EC2 security groups in every audited region and
// returns one IngressRule entry per inbound IPv4 rule. The Region field is
// set on every rule so findings can be attributed to the correct region.
// Only IPv4 ranges are collected; the exposure rule matches 0.0.0.0/0.
func (a *AWSInventory) ListIngressRules(ctx context.Context) ([]models.IngressRule, error) {
	var rules []models.IngressRule
	for _, region := range a.regions {
		out, err := a.regional[region].EC2.DescribeSecurityGroups(ctx, &ec2svc.DescribeSecurityGroupsInput{})
		if err != nil {
			return nil, fmt.Errorf("describe security groups in %s: %w", region, err)
		}
		for _, sg := range out.SecurityGroups {
			groupID := aws.ToString(sg.GroupId)
			for _, perm := range sg.IpPermissions {
				fromPort := int(aws.ToInt32(perm.FromPort))
				toPort := int(aws.ToInt32(perm.ToPort))
				for _, ipRange := range perm.IpRanges {
					rules = append(rules, models.IngressRule{
						GroupID:    groupID,
						Protocol:   aws.ToString(perm.IpProtocol),
						FromPort:   fromPort,
						ToPort:     toPort,
						SourceCIDR: aws.ToString(ipRange.CidrIp),
						Region:     region,
					})
				}
			}
		}
	}
	return rules, nil
}
