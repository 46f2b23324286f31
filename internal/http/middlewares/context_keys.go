package middlewares

const (
	CtxRequestID = "request_id"
	CtxClaims    = "auth.claims"
	CtxUserID    = "auth.user_id"
	CtxEmail     = "auth.email"
	CtxRole      = "auth.role"
)
