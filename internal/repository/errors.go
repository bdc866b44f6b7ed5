package repository

import "errors"

// 这些错误的信息会原样展示给用户
var (
	ErrNotEnoughVacancies   = errors.New("班次剩余名额不足，请刷新后重试")
	ErrApplicationsChanged  = errors.New("部分申请的状态已发生变化，请刷新后重试")
	ErrApplicationNotFound  = errors.New("申请不存在或状态已发生变化")
	ErrShiftEnded           = errors.New("班次已结束")
	ErrTimesheetNotPending  = errors.New("工时单状态已发生变化，请刷新后重试")
	ErrTimesheetNotEditable = errors.New("工时单已确认或已支付，无法修改")
)
