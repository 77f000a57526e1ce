package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("некорректные данные")
	ErrDuplicateNumber = errors.New("номер уже используется")
	ErrNotFound        = errors.New("запись не найдена")
	ErrPersistence     = errors.New("ошибка обращения к хранилищу")
)

// IncompleteAuditError — попытка завершить инвентаризацию с
// непроверенными позициями. Remaining — сколько осталось проверить.
type IncompleteAuditError struct {
	Remaining int64
}

func (e *IncompleteAuditError) Error() string {
	return fmt.Sprintf("не все позиции проверены, осталось: %d", e.Remaining)
}
