// Package form binds submitted fields into request structs. Pointer fields
// stay nil when the field was not submitted, so edits only touch what was
// sent; creates fall back to the documented defaults.
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyyur-service/internal/apperr"

	"github.com/labstack/echo/v4"
)

// Bind reads a form-encoded or JSON body into req. Binding failures are
// reported as a validation failure on the body.
func Bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var ve apperr.ValidationError
		ve.Add("body", bindMessage(err))
		return &ve
	}
	return nil
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}

// Checkbox is a checkbox field. Ticked boxes submit y, yes, on, true or 1;
// n, no, off, false, 0 and the empty string mean unticked.
type Checkbox bool

// UnmarshalParam implements echo.BindUnmarshaler
func (cb *Checkbox) UnmarshalParam(param string) error {
	b, err := parseFlag(param)
	if err != nil {
		return err
	}
	*cb = Checkbox(b)
	return nil
}

// UnmarshalParams takes the last of repeated values, so a hidden "n" placed
// before the checkbox is overridden when the box is ticked
func (cb *Checkbox) UnmarshalParams(params []string) error {
	if len(params) == 0 {
		*cb = false
		return nil
	}
	return cb.UnmarshalParam(params[len(params)-1])
}

// UnmarshalJSON accepts JSON booleans and the same strings as a form
func (cb *Checkbox) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return cb.UnmarshalParam(s)
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "on", "true", "1":
		return true, nil
	case "", "n", "no", "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a checkbox value", s)
	}
}

// Timestamp is a date and time field, see ParseTimestamp. A blank value
// binds the zero time.
type Timestamp struct {
	time.Time
}

// UnmarshalParam implements echo.BindUnmarshaler
func (ts *Timestamp) UnmarshalParam(param string) error {
	if strings.TrimSpace(param) == "" {
		ts.Time = time.Time{}
		return nil
	}
	t, err := ParseTimestamp(param)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

// UnmarshalJSON accepts the same strings as a form
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	return ts.UnmarshalParam(s)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseTimestamp accepts RFC 3339 or a zone-less date and time, which is
// read as UTC
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a valid timestamp", s)
}

// trimmed returns a trimmed copy of s, nil when s is nil
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func checked(cb *Checkbox) *bool {
	if cb == nil {
		return nil
	}
	b := bool(*cb)
	return &b
}

func genres(list []string) *[]string {
	if list == nil {
		return nil
	}
	out := append([]string(nil), list...)
	return &out
}
