package request

// Headers a trusted internal caller (the standalone bot) sends so that rate
// limits apply per end user instead of per calling host.
const (
	HeaderInternalToken = "X-Internal-Token"
	HeaderClientID      = "X-Client-ID"
)
