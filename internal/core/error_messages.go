package core

// error_messages.go maps run errors to the messages shown to users.
//
// Every message carries a code so users can quote it to support:
//
//	FILE001 - no file selected                       (ErrNoFile)
//	FILE002 - file could not be read or decoded       (ErrFileRead)
//	FILE003 - unsupported extension                   (ErrInvalidFormat)
//	FILE004 - file exceeds the size limit             (ErrFileTooLarge)
//	FILE005 - no usable rows                          (ErrEmptyResult)
//	VAL001  - workbook has no sheets                  (ErrNoSheets)
//	VAL002  - first sheet is empty                    (ErrEmptySheet)
//	VAL003  - header row does not match               (ErrInvalidHeaders)
//	TPL001  - template has non-positive dimensions    (ErrInvalidTemplate)
//	TPL002  - template key not in the catalog         (ErrUnknownTemplate)
//	PDF001  - nothing to render                       (ErrNoData)
//	JOB001  - too many files being processed          (ErrTooManyJobs)
//	JOB002  - request cancelled                       ("context canceled")
//	JOB003  - request timed out                       ("context deadline exceeded")
//	RATE001 - rate limited                            ("rate limit")
//	ERR000  - anything else; see the server log for the technical error
//
// Sentinel errors are matched with errors.Is first, then the remaining
// patterns with a case-insensitive substring match. First match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage is the user-facing description of an error.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type sentinelMessage struct {
	target error
	msg    UserMessage
}

var sentinelMessages = []sentinelMessage{
	{ErrNoFile, UserMessage{
		Message: "Передан не файл.",
		Action:  "Выберите файл .xlsx или .csv",
		Code:    "FILE001",
	}},
	{ErrFileRead, UserMessage{
		Message: "Не удалось прочитать файл.",
		Action:  "Проверьте, что файл не повреждён, и сохраните его заново",
		Code:    "FILE002",
	}},
	{ErrInvalidFormat, UserMessage{
		Message: "Пожалуйста, загрузите файл в формате .xlsx или .csv",
		Action:  "Сохраните таблицу в формате Excel (.xlsx)",
		Code:    "FILE003",
	}},
	{ErrFileTooLarge, UserMessage{
		Message: "Файл превышает допустимый размер.",
		Action:  "Разделите таблицу на несколько файлов",
		Code:    "FILE004",
	}},
	{ErrEmptyResult, UserMessage{
		Message: "Файл пустой или не содержит данных.",
		Action:  "Каждая строка должна содержать не менее 7 ячеек",
		Code:    "FILE005",
	}},
	{ErrNoSheets, UserMessage{
		Message: "Файл не содержит ни одного листа.",
		Action:  "Добавьте лист с данными об оборудовании",
		Code:    "VAL001",
	}},
	{ErrEmptySheet, UserMessage{
		Message: "Первый лист пустой.",
		Action:  "Данные должны находиться на первом листе",
		Code:    "VAL002",
	}},
	{ErrInvalidHeaders, UserMessage{
		Message: "Заголовки отсутствуют или неполные.",
		Action:  "Скачайте шаблон и сверьте первую строку",
		Code:    "VAL003",
	}},
	{ErrInvalidTemplate, UserMessage{
		Message: "Некорректный шаблон наклеек.",
		Action:  "Количество колонок и рядов должно быть положительным",
		Code:    "TPL001",
	}},
	{ErrUnknownTemplate, UserMessage{
		Message: "Шаблон наклеек не найден.",
		Action:  "Выберите шаблон из списка",
		Code:    "TPL002",
	}},
	{ErrNoData, UserMessage{
		Message: "Нет данных для генерации PDF",
		Action:  "Загрузите файл с данными об оборудовании",
		Code:    "PDF001",
	}},
	{ErrTooManyJobs, UserMessage{
		Message: "Сервер занят обработкой других файлов.",
		Action:  "Подождите немного и повторите попытку",
		Code:    "JOB001",
	}},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Запрос был отменён.",
			Action:  "Повторите попытку",
			Code:    "JOB002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Превышено время обработки запроса.",
			Action:  "Попробуйте загрузить файл меньшего размера",
			Code:    "JOB003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Слишком много запросов.",
			Action:  "Подождите минуту перед следующей попыткой",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "Произошла непредвиденная ошибка.",
	Action:  "Повторите попытку или обратитесь в поддержку",
	Code:    "ERR000",
}

// MapError converts err to a user message. A *HeaderError keeps its own
// detailed text (expected label, position, actual value).
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.target) {
			msg := sm.msg
			var herr *HeaderError
			if errors.As(err, &herr) {
				msg.Message = herr.Error()
			}
			return msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats err as "Message (Код: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Код: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
