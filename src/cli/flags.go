package cli

import (
	"github.com/spf13/cobra"

	"github.com/lospro7/snapshot-s3-util/src/backup"
)

// addFlags declares the full flag surface. Exactly one action flag must be
// given; the AWS credentials and bucket are always required.
func addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.BoolP("create", "c", false, "Create HBase snapshot")
	flags.BoolP("createExport", "x", false, "Create HBase snapshot AND export to S3")
	flags.BoolP("export", "e", false, "Export HBase snapshot to S3")
	flags.BoolP("import", "i", false,
		"Import HBase snapshot from S3. May need to run as the hbase user when importing into HBase")

	flags.StringP("table", "t", "",
		"The table name to create a snapshot from. Required for creating a snapshot")
	flags.StringP("snapshot", "n", "",
		"The snapshot name. Required for importing from S3")
	flags.StringP("awsAccessKey", "k", "", "The AWS access key")
	flags.StringP("awsAccessSecret", "s", "", "The AWS access secret string")
	flags.StringP("bucketName", "b", "", "The S3 bucket name where snapshots are stored")
	flags.StringP("s3Path", "p", "/hbase", "The snapshot directory in S3")
	flags.StringP("hdfsPath", "d", "/hbase", "The snapshot directory in HDFS")
	flags.Int64P("mappers", "m", 1, "The number of parallel copiers if copying to/from S3")
	flags.BoolP("s3n", "a", false,
		"Use the s3n protocol instead of s3. Might work better, but beware of the 5GB file limit imposed by S3")
	flags.Int64P("snapshotTtl", "l", 0,
		"Delete snapshots older than this value (seconds) from the running HBase cluster")

	flags.String("conf", "", "Path to the cluster site file (default: search hbase-site.yaml)")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	cmd.MarkFlagsOneRequired("create", "createExport", "export", "import")
	cmd.MarkFlagsMutuallyExclusive("create", "createExport", "export", "import")
	_ = cmd.MarkFlagRequired("awsAccessKey")
	_ = cmd.MarkFlagRequired("awsAccessSecret")
	_ = cmd.MarkFlagRequired("bucketName")
}

// requestFromFlags builds the immutable request value from the parsed flags.
func requestFromFlags(cmd *cobra.Command) (backup.Request, error) {
	flags := cmd.Flags()

	var action backup.Action
	for _, candidate := range []struct {
		name   string
		action backup.Action
	}{
		{"create", backup.ActionCreate},
		{"createExport", backup.ActionCreateExport},
		{"export", backup.ActionExport},
		{"import", backup.ActionImport},
	} {
		set, err := flags.GetBool(candidate.name)
		if err != nil {
			return backup.Request{}, err
		}
		if set {
			action = candidate.action
		}
	}

	table, _ := flags.GetString("table")
	snapshot, _ := flags.GetString("snapshot")
	accessKey, _ := flags.GetString("awsAccessKey")
	accessSecret, _ := flags.GetString("awsAccessSecret")
	bucket, _ := flags.GetString("bucketName")
	s3Path, _ := flags.GetString("s3Path")
	hdfsPath, _ := flags.GetString("hdfsPath")
	mappers, _ := flags.GetInt64("mappers")
	useS3N, _ := flags.GetBool("s3n")
	ttl, _ := flags.GetInt64("snapshotTtl")

	return backup.Request{
		Action:       action,
		Table:        table,
		SnapshotName: snapshot,
		HDFSPath:     hdfsPath,
		S3Path:       s3Path,
		Mappers:      int(mappers),
		SnapshotTTL:  ttl,
		Bucket:       bucket,
		AccessKey:    accessKey,
		AccessSecret: accessSecret,
		UseS3N:       useS3N,
	}, nil
}
