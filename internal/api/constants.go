package api

// 纯文本接口的响应内容
const (
	textSend           = "Send..."
	textBadTemperature = "Bad temperature value"
	textBadStreamMode  = "Bad stream mode"
	textBadOnOff       = "Bad state value"
	textSendFailed     = "Send failed"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)
