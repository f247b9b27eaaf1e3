package domain

import "errors"

var (
	// ErrInvalidURL возвращается, когда адрес ленты пуст. Загрузка не выполняется.
	ErrInvalidURL = errors.New("feed url is empty")
	// ErrFetch оборачивает сетевые ошибки и ответы с кодом, отличным от 200.
	ErrFetch = errors.New("feed fetch failed")
	// ErrParse оборачивает ошибки разбора XML-документа.
	ErrParse = errors.New("feed parse failed")
)
