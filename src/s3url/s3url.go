package s3url

import "fmt"

// Protocol selects the filesystem scheme used to address the object store.
type Protocol string

const (
	// ProtocolS3 is the standard block-based S3 filesystem.
	ProtocolS3 Protocol = "s3://"
	// ProtocolS3N is the native-semantics S3 filesystem. It can be more
	// compatible with other tooling but inherits S3's 5 GB object limit.
	ProtocolS3N Protocol = "s3n://"
)

// Endpoint describes an addressable location in the remote object store.
// It is a pure value; building URLs from it performs no I/O.
type Endpoint struct {
	Protocol     Protocol
	AccessKey    string
	AccessSecret string
	Bucket       string
	Path         string
}

// URL renders the endpoint as a filesystem URL. When withCredentials is true
// the access key and secret are embedded in the authority section; callers
// that propagate credentials out-of-band (e.g. via configuration entries)
// must pass false so secrets never reach a loggable URL.
func (e Endpoint) URL(withCredentials bool) string {
	if withCredentials {
		return fmt.Sprintf("%s%s:%s@%s%s", e.Protocol, e.AccessKey, e.AccessSecret, e.Bucket, e.Path)
	}
	return fmt.Sprintf("%s%s%s", e.Protocol, e.Bucket, e.Path)
}

// Authority renders the scheme and bucket portion of the endpoint, with
// credentials embedded when requested. This is the form the cluster expects
// as a default-filesystem address.
func (e Endpoint) Authority(withCredentials bool) string {
	if withCredentials {
		return fmt.Sprintf("%s%s:%s@%s", e.Protocol, e.AccessKey, e.AccessSecret, e.Bucket)
	}
	return fmt.Sprintf("%s%s", e.Protocol, e.Bucket)
}

// Redacted renders the credentialed URL form with the secret masked. Safe for
// logs.
func (e Endpoint) Redacted() string {
	return fmt.Sprintf("%s%s:***@%s%s", e.Protocol, e.AccessKey, e.Bucket, e.Path)
}

// String implements fmt.Stringer with the credential-free form so accidental
// formatting of an Endpoint cannot leak secrets.
func (e Endpoint) String() string {
	return e.URL(false)
}
