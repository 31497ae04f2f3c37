package s3url

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointURL(t *testing.T) {
	ep := Endpoint{
		Protocol:     ProtocolS3,
		AccessKey:    "AK",
		AccessSecret: "SK",
		Bucket:       "mybucket",
		Path:         "/hbase",
	}

	assert.Equal(t, "s3://AK:SK@mybucket/hbase", ep.URL(true))
	assert.Equal(t, "s3://mybucket/hbase", ep.URL(false))

	ep.Protocol = ProtocolS3N
	assert.Equal(t, "s3n://AK:SK@mybucket/hbase", ep.URL(true))
	assert.Equal(t, "s3n://mybucket/hbase", ep.URL(false))
}

func TestEndpointAuthority(t *testing.T) {
	ep := Endpoint{
		Protocol:     ProtocolS3,
		AccessKey:    "AK",
		AccessSecret: "SK",
		Bucket:       "mybucket",
		Path:         "/hbase",
	}

	assert.Equal(t, "s3://AK:SK@mybucket", ep.Authority(true))
	assert.Equal(t, "s3://mybucket", ep.Authority(false))
}

func TestEndpointNeverLeaksSecretIntoLogs(t *testing.T) {
	ep := Endpoint{
		Protocol:     ProtocolS3,
		AccessKey:    "AK",
		AccessSecret: "supersecret",
		Bucket:       "mybucket",
		Path:         "/hbase",
	}

	assert.Equal(t, "s3://AK:***@mybucket/hbase", ep.Redacted())
	assert.NotContains(t, fmt.Sprintf("%v", ep), "supersecret")
	assert.NotContains(t, ep.String(), "supersecret")
}
