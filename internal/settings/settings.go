package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/smartseek/internal/storage"
)

// Field names as stored in the sync area.
const (
	FieldSeekAmount = "seekAmount"
	FieldBackKey    = "backKey"
	FieldForwardKey = "forwardKey"
)

// Settings is the canonical settings record.
type Settings struct {
	// SeekAmount is the seek interval in seconds, in (0, MaxSeekAmount].
	SeekAmount float64
	// BackKey is the binding that seeks backward.
	BackKey string
	// ForwardKey is the binding that seeks forward.
	ForwardKey string
}

// Defaults returns the settings written on install.
func Defaults() Settings {
	return Settings{
		SeekAmount: 5,
		BackKey:    "Shift+J",
		ForwardKey: "Shift+L",
	}
}

// LegacyDefaults returns the binding defaults of the previous release.
// Stored bindings still equal to these are treated as never customized.
func LegacyDefaults() storage.Record {
	return storage.Record{
		FieldBackKey:    "j",
		FieldForwardKey: "l",
	}
}

// Fields returns the names of the settings fields.
func Fields() []string {
	return []string{FieldSeekAmount, FieldBackKey, FieldForwardKey}
}

// IsField reports whether name is a settings field.
func IsField(name string) bool {
	switch name {
	case FieldSeekAmount, FieldBackKey, FieldForwardKey:
		return true
	}
	return false
}

// Record converts s to its stored form.
func (s Settings) Record() storage.Record {
	return storage.Record{
		FieldSeekAmount: s.SeekAmount,
		FieldBackKey:    s.BackKey,
		FieldForwardKey: s.ForwardKey,
	}
}

// Set assigns a single field from a stored value. A nil value restores the
// field's default. Unknown fields are ignored and reported as not applied.
func (s *Settings) Set(field string, value any) (bool, error) {
	if value == nil {
		def := Defaults()
		switch field {
		case FieldSeekAmount:
			s.SeekAmount = def.SeekAmount
		case FieldBackKey:
			s.BackKey = def.BackKey
		case FieldForwardKey:
			s.ForwardKey = def.ForwardKey
		default:
			return false, nil
		}
		return true, nil
	}

	switch field {
	case FieldSeekAmount:
		n, ok := toFloat(value)
		if !ok {
			return false, typeMismatch(field, value)
		}
		s.SeekAmount = n
	case FieldBackKey, FieldForwardKey:
		str, ok := value.(string)
		if !ok {
			return false, typeMismatch(field, value)
		}
		if field == FieldBackKey {
			s.BackKey = str
		} else {
			s.ForwardKey = str
		}
	default:
		return false, nil
	}
	return true, nil
}

// FromRecord lays the fields of r over base. Fields with a value of the wrong
// type keep the base value; their errors are joined into the returned error.
func FromRecord(r storage.Record, base Settings) (Settings, error) {
	var errs []error
	for _, field := range Fields() {
		v, ok := r[field]
		if !ok {
			continue
		}
		if _, err := base.Set(field, v); err != nil {
			errs = append(errs, err)
		}
	}
	return base, errors.Join(errs...)
}

// Load reads the settings from the sync area. On any failure it returns
// Defaults along with the error, so callers can log and carry on.
func Load(ctx context.Context, store storage.Store) (Settings, error) {
	defaults := Defaults()
	if store == nil {
		return defaults, errors.New("no settings store")
	}

	r, err := store.Get(ctx, storage.AreaSync, defaults.Record())
	if err != nil {
		return defaults, fmt.Errorf("loading settings: %w", err)
	}
	return FromRecord(r, defaults)
}

func typeMismatch(field string, value any) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Stored %s has unexpected type %T.", field, value),
		Value:   value,
		Code:    ErrCodeTypeMismatch,
	}
}

// toFloat accepts the numeric types produced by the store codecs.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}
