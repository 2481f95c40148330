package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// gin.Context 中的键
const (
	ContextSessionKey   = "session"
	ContextSessionIDKey = "session_id"
)

const (
	LoginPath     = "/"
	DashboardPath = "/dashboard"
	ResultsPath   = "/results"
)

const MimeOctetStream = "application/octet-stream"
