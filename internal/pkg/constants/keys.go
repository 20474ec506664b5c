package constants

const (
	CookieKeySessionToken = "session_token"

	CtxKeyUserID    = "user_id"
	CtxKeyUserType  = "user_type"
	CtxKeyRequestID = "request_id"

	HeaderAdminToken = "X-Admin-Token"

	ViperSecretKey   = "auth.secret"
	ViperDatabaseURL = "database.url"
	ViperListenAddr  = "server.addr"
	ViperUploadDir   = "uploads.dir"
	ViperCORSOrigins = "server.cors_origins"
	ViperDevMode     = "server.dev"
)
