package appointment

import "errors"

var (
	// ErrAppointmentNotFound 预约不存在
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrRecordNotFound 病历不存在
	ErrRecordNotFound = errors.New("medical record not found")

	// ErrInvalidStatus 非法的预约状态
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrMissingField 必填字段缺失
	ErrMissingField = errors.New("missing required field")
)
