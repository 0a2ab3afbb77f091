package dto

import (
	"fmt"
	"strings"
	"time"
)

// APIResponse sobre común de todas las respuestas HTTP.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// DateLayout formato de fechas de calendario en la API.
const DateLayout = "2006-01-02"

// Date fecha de calendario; acepta "2006-01-02" o RFC3339 y se serializa como "2006-01-02".
// Internamente se normaliza a medianoche UTC.
type Date struct {
	time.Time
}

// NewDate normaliza t a medianoche UTC del mismo día.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate interpreta "2006-01-02" o RFC3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: se espera AAAA-MM-DD", s)
	}
	return NewDate(t), nil
}

// UnmarshalJSON acepta null y cadena vacía como fecha cero.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON serializa como "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}
