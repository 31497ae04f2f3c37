// Package backup implements the snapshot lifecycle orchestrator: deciding
// which operations run and in what order, deriving snapshot names, sweeping
// expired snapshots, and driving the distributed copy engine for exports and
// imports.
package backup

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/lospro7/snapshot-s3-util/src/s3url"
)

// Action is the requested operation. CreateExport is create followed by
// export; export never runs after a failed create.
type Action int

const (
	ActionCreate Action = iota + 1
	ActionCreateExport
	ActionExport
	ActionImport
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionCreateExport:
		return "createExport"
	case ActionExport:
		return "export"
	case ActionImport:
		return "import"
	default:
		return "none"
	}
}

// Request is the immutable description of one invocation, constructed once by
// flag parsing and never modified afterwards.
type Request struct {
	Action Action

	Table        string
	SnapshotName string

	HDFSPath string `validate:"required"`
	S3Path   string `validate:"required"`
	Mappers  int    `validate:"gte=1"`

	// SnapshotTTL is the retention threshold in seconds; 0 disables the
	// sweep.
	SnapshotTTL int64 `validate:"gte=0"`

	Bucket       string `validate:"required"`
	AccessKey    string `validate:"required"`
	AccessSecret string `validate:"required"`

	// UseS3N selects the native-semantics protocol with its object-size
	// limit.
	UseS3N bool
}

// InvalidRequestError reports a request that fails validation. No mutating
// action runs once one is returned.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field-level constraints and the conditional action rules.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return &InvalidRequestError{Reason: fmt.Sprintf("field %s fails %q", f.Field(), f.Tag())}
		}
		return &InvalidRequestError{Reason: err.Error()}
	}

	switch r.Action {
	case ActionCreate, ActionCreateExport, ActionExport, ActionImport:
	default:
		return &InvalidRequestError{Reason: "exactly one of create, createExport, export, import must be requested"}
	}
	if r.createRequested() && r.Table == "" {
		return &InvalidRequestError{Reason: "need a table name"}
	}
	if (r.Action == ActionImport || r.Action == ActionExport) && r.SnapshotName == "" {
		return &InvalidRequestError{Reason: "need a snapshot name"}
	}
	return nil
}

func (r Request) createRequested() bool {
	return r.Action == ActionCreate || r.Action == ActionCreateExport
}

func (r Request) exportRequested() bool {
	return r.Action == ActionExport || r.Action == ActionCreateExport
}

// Protocol returns the object-store scheme selected by the request.
func (r Request) Protocol() s3url.Protocol {
	if r.UseS3N {
		return s3url.ProtocolS3N
	}
	return s3url.ProtocolS3
}

// Endpoint returns the remote object-store endpoint addressed by the request.
func (r Request) Endpoint() s3url.Endpoint {
	return s3url.Endpoint{
		Protocol:     r.Protocol(),
		AccessKey:    r.AccessKey,
		AccessSecret: r.AccessSecret,
		Bucket:       r.Bucket,
		Path:         r.S3Path,
	}
}
