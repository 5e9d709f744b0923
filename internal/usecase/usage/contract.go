package usage

// QuotaReader provides read-only access to the request quota.
type QuotaReader interface {
	Limit() int64
	Used() int64
	Remaining() int64
}
