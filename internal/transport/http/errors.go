package httptransport

import (
	"net/http"

	"agrofirma/backend/internal/domain"
	"agrofirma/backend/internal/service"
)

// 错误消息映射表（业务错误 -> 乌克兰语消息）
var errorMessages = map[error]string{
	domain.ErrFieldsMissing: MsgFieldsMissing,
	domain.ErrInvalidEmail:  MsgInvalidEmail,
	domain.ErrInvalidPhone:  MsgInvalidPhone,
	service.ErrRateLimited:  MsgRateLimited,
	service.ErrDuplicate:    MsgDuplicate,
}

// 业务错误对应的 HTTP 状态码
var errorStatus = map[error]int{
	domain.ErrFieldsMissing: http.StatusBadRequest,
	domain.ErrInvalidEmail:  http.StatusBadRequest,
	domain.ErrInvalidPhone:  http.StatusBadRequest,
	service.ErrRateLimited:  http.StatusTooManyRequests,
	service.ErrDuplicate:    http.StatusConflict,
}

// GetErrorMessage 获取错误的乌克兰语消息
func GetErrorMessage(err error) string {
	if msg, ok := errorMessages[err]; ok {
		return msg
	}
	return MsgSendFailed
}

// GetErrorStatus 获取错误对应的 HTTP 状态码，未知错误按 500 处理
func GetErrorStatus(err error) int {
	if status, ok := errorStatus[err]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// 通用错误消息
const (
	// 提交相关
	MsgFieldsMissing  = "Будь ласка, заповніть всі поля."
	MsgInvalidEmail   = "Невірний формат email."
	MsgInvalidPhone   = "Невірний формат телефону."
	MsgRateLimited    = "Зачекайте трохи перед повторним надсиланням."
	MsgDuplicate      = "Це повідомлення вже було надіслано раніше."
	MsgSendFailed     = "Не вдалося надіслати повідомлення."
	MsgInvalidRequest = "Будь ласка, заповніть всі поля."

	// 管理面板相关
	MsgStoreMissing = "Файл повідомлень не знайдено."
	MsgSaveFailed   = "Помилка збереження оновлених повідомлень."
	MsgNoMessages   = "Немає жодного повідомлення."
)
