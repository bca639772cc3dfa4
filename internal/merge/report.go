package merge

// Report aggregates what happened during one reconciliation pass. The pass
// itself never fails; callers that care whether every remote call went
// through inspect the report.
type Report struct {
	// FetchFailed is set when the remote snapshot could not be retrieved
	// and the pass ran against an empty remote set.
	FetchFailed bool

	// Fetched is the number of remote records returned by the store.
	Fetched int

	// Malformed counts fetched records excluded from the pass because
	// they lacked a usable id or update timestamp.
	Malformed int

	// UploadsAttempted counts records the local side won and tried to
	// write back.
	UploadsAttempted int

	// UploadsFailed counts write-backs that the store rejected. Failed
	// uploads stay in the merged result and are retried naturally on the
	// next pass.
	UploadsFailed int
}

// Clean reports whether the pass completed without any degraded behavior.
func (r Report) Clean() bool {
	return !r.FetchFailed && r.Malformed == 0 && r.UploadsFailed == 0
}
