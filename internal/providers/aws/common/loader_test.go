package common

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type fakeSTSClient struct {
	account string
	err     error
}

func (f *fakeSTSClient) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(f.account)}, nil
}

type fakeEC2Client struct {
	regions []string
	err     error
}

func (f *fakeEC2Client) DescribeRegions(context.Context, *ec2.DescribeRegionsInput, ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &ec2.DescribeRegionsOutput{}
	for _, r := range f.regions {
		out.Regions = append(out.Regions, ec2types.Region{RegionName: aws.String(r)})
	}
	return out, nil
}

func fakeFactory(stsClient STSClient, ec2Client EC2RegionClient) ClientFactory {
	return func(cfg aws.Config) *ClientSet {
		return &ClientSet{STS: stsClient, EC2: ec2Client}
	}
}

// isolateAWSEnv points every AWS SDK lookup at a temp directory with static
// credentials so no real profile or metadata endpoint is touched.
func isolateAWSEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(home, ".aws", "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(home, ".aws", "credentials"))
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIATEST")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	t.Setenv("AWS_REGION", "")
	return home
}

func writeAWSFiles(t *testing.T, home, credentials, config string) {
	t.Helper()
	dir := filepath.Join(home, ".aws")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "credentials"), []byte(credentials), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config"), []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadProfile_ResolvesAccountID(t *testing.T) {
	isolateAWSEnv(t)

	provider := NewDefaultAWSClientProviderWithFactory(
		fakeFactory(&fakeSTSClient{account: "123456789012"}, &fakeEC2Client{}),
	)

	cfg, err := provider.LoadProfile(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProfileName != "default" {
		t.Errorf("profile name = %q, want default", cfg.ProfileName)
	}
	if cfg.AccountID != "123456789012" {
		t.Errorf("account ID = %q, want 123456789012", cfg.AccountID)
	}
	// No region configured anywhere: the fallback applies.
	if cfg.Region != "us-east-1" {
		t.Errorf("region = %q, want us-east-1 fallback", cfg.Region)
	}
}

func TestLoadProfile_STSFailure(t *testing.T) {
	isolateAWSEnv(t)

	provider := NewDefaultAWSClientProviderWithFactory(
		fakeFactory(&fakeSTSClient{err: errors.New("InvalidClientTokenId")}, &fakeEC2Client{}),
	)

	if _, err := provider.LoadProfile(context.Background(), ""); err == nil {
		t.Fatal("expected error when STS identity resolution fails")
	}
}

func TestGetActiveRegions(t *testing.T) {
	provider := NewDefaultAWSClientProviderWithFactory(
		fakeFactory(&fakeSTSClient{account: "123456789012"}, &fakeEC2Client{regions: []string{"us-east-1", "eu-west-1"}}),
	)

	cfg := &ProfileConfig{
		ProfileName: "default",
		Clients:     &ClientSet{EC2: &fakeEC2Client{regions: []string{"us-east-1", "eu-west-1"}}},
	}
	regions, err := provider.GetActiveRegions(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regions) != 2 || regions[0] != "us-east-1" || regions[1] != "eu-west-1" {
		t.Fatalf("unexpected regions: %v", regions)
	}
}

func TestGetActiveRegions_Error(t *testing.T) {
	provider := NewDefaultAWSClientProvider()
	cfg := &ProfileConfig{
		ProfileName: "default",
		Clients:     &ClientSet{EC2: &fakeEC2Client{err: errors.New("UnauthorizedOperation")}},
	}
	if _, err := provider.GetActiveRegions(context.Background(), cfg); err == nil {
		t.Fatal("expected error from region discovery failure")
	}
}

func TestConfigForRegion(t *testing.T) {
	provider := NewDefaultAWSClientProvider()
	cfg := &ProfileConfig{Config: aws.Config{Region: "us-east-1"}}

	regional := provider.ConfigForRegion(cfg, "ap-south-1")
	if regional.Region != "ap-south-1" {
		t.Errorf("regional config region = %q, want ap-south-1", regional.Region)
	}
	if cfg.Config.Region != "us-east-1" {
		t.Errorf("original config mutated: region = %q", cfg.Config.Region)
	}
}

func TestLoadAllProfiles_DiscoversFromBothFiles(t *testing.T) {
	home := isolateAWSEnv(t)
	writeAWSFiles(t, home,
		"[default]\naws_access_key_id = AKIATEST\naws_secret_access_key = secret\n\n"+
			"[staging]\naws_access_key_id = AKIASTAGE\naws_secret_access_key = secret\n",
		"[profile prod]\nregion = eu-west-1\n",
	)

	provider := NewDefaultAWSClientProviderWithFactory(
		fakeFactory(&fakeSTSClient{account: "123456789012"}, &fakeEC2Client{}),
	)

	profiles, err := provider.LoadAllProfiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(profiles))
	}
	names := []string{profiles[0].ProfileName, profiles[1].ProfileName, profiles[2].ProfileName}
	want := []string{"default", "staging", "prod"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("profile[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if profiles[2].Region != "eu-west-1" {
		t.Errorf("prod region = %q, want eu-west-1", profiles[2].Region)
	}
}

func TestLoadAllProfiles_NoFiles(t *testing.T) {
	isolateAWSEnv(t)

	provider := NewDefaultAWSClientProviderWithFactory(
		fakeFactory(&fakeSTSClient{account: "123456789012"}, &fakeEC2Client{}),
	)

	profiles, err := provider.LoadAllProfiles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected no profiles, got %d", len(profiles))
	}
}
