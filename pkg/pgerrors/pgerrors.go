package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE, которые разбирают репозитории
const (
	CodeUniqueViolation      = pq.ErrorCode("23505")
	CodeForeignKeyViolation  = pq.ErrorCode("23503")
	CodeCheckViolation       = pq.ErrorCode("23514")
	CodeExclusionViolation   = pq.ErrorCode("23P01")
	CodeSerializationFailure = pq.ErrorCode("40001")
	CodeDeadlockDetected     = pq.ErrorCode("40P01")
)

// Code возвращает SQLSTATE, если err - ошибка postgres
func Code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// Constraint имя нарушенного ограничения
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, CodeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, CodeForeignKeyViolation)
}

func IsCheckViolation(err error) bool {
	return hasCode(err, CodeCheckViolation)
}

func IsExclusionViolation(err error) bool {
	return hasCode(err, CodeExclusionViolation)
}

// IsSerializationFailure конфликт сериализуемых транзакций или дедлок
func IsSerializationFailure(err error) bool {
	return hasCode(err, CodeSerializationFailure) || hasCode(err, CodeDeadlockDetected)
}

func hasCode(err error, code pq.ErrorCode) bool {
	c, ok := Code(err)
	return ok && c == code
}
