package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	CompanyIDCtxKey ContextKey = "companyID"
	ShiftCtx        ContextKey = "shift"
	ApplicationCtx  ContextKey = "application"
	TimesheetCtx    ContextKey = "timesheet"
)
