package types

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidMoney возвращается при некорректной денежной сумме
var ErrInvalidMoney = errors.New("invalid money amount")

// Money денежная сумма в копейках (центах).
// В БД хранится как NUMERIC(10,2), в JSON - число с двумя знаками после точки.
type Money int64

// NewMoneyFromString парсит "100", "100.5", "100.50". Больше двух знаков - ошибка.
func NewMoneyFromString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidMoney
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if !isDigits(intPart) || (hasDot && (!isDigits(fracPart) || len(fracPart) > 2)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	var cents int64
	if hasDot {
		if len(fracPart) == 1 {
			fracPart += "0"
		}
		cents, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
		}
	}

	if units > (math.MaxInt64-cents)/100 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidMoney, s)
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return Money(total), nil
}

// NewMoneyFromCents создает сумму из целого числа копеек
func NewMoneyFromCents(cents int64) Money {
	return Money(cents)
}

// MustMoney паникует при ошибке. Только для тестов.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return int64(m)
}

func (m Money) IsPositive() bool {
	return m > 0
}

func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON принимает как число, так и строку в кавычках
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := NewMoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan реализует sql.Scanner для NUMERIC колонок
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		return m.scanString(string(v))
	case string:
		return m.scanString(v)
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		*m = Money(math.Round(v * 100))
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidMoney, src)
	}
}

func (m *Money) scanString(s string) error {
	// NUMERIC может прийти с лишними нулями ("100.500") после агрегатов
	if intPart, frac, ok := strings.Cut(s, "."); ok && len(frac) > 2 {
		trimmed := strings.TrimRight(frac, "0")
		if len(trimmed) > 2 {
			return fmt.Errorf("%w: %q has more than two decimals", ErrInvalidMoney, s)
		}
		s = intPart
		if trimmed != "" {
			s += "." + trimmed
		}
	}
	parsed, err := NewMoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value реализует driver.Valuer
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
