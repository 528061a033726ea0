package port

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/vk/flowgrid/engine"
)

// validateCache memoizes validation per contract shape. Validation is a
// pure function of the type, so running it once per shape is enough.
var validateCache sync.Map // reflect.Type -> error (nil entries allowed)

// Validate checks a contract shape: the struct must reflect cleanly and no
// two fields of the same base kind (after unwrapping one cardinality
// wrapper) may share a tag. All violations are collected into a single
// aggregated error, not reported one at a time. The argument only supplies
// the type; a fresh instance is reflected internally, so an in-use
// contract value may be passed.
func Validate(shape any) error {
	t := reflect.TypeOf(shape)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("contract shape must be a pointer to struct, got %T", shape)
	}
	if cached, ok := validateCache.Load(t); ok {
		if cached == nil {
			return nil
		}
		return cached.(error)
	}
	err := validateShape(t)
	validateCache.Store(t, err)
	return err
}

// MustValidate aborts on an invalid shape. Intended for registration-time
// checks that must not be survivable.
func MustValidate(shape any) {
	if err := Validate(shape); err != nil {
		panic(err)
	}
}

func validateShape(t reflect.Type) error {
	fresh := reflect.New(t.Elem()).Interface()
	inst, err := NewInstance(fresh)
	if err != nil {
		return err
	}

	var errs []string
	seen := make(map[engine.Kind]map[string]int)
	for i, f := range inst.Fields() {
		kind := f.Kind()
		tag := f.Tag()
		if seen[kind] == nil {
			seen[kind] = make(map[string]int)
		}
		if first, dup := seen[kind][tag]; dup {
			errs = append(errs, fmt.Sprintf("field %d: duplicate tag %q for kind %s (first declared by field %d)", i, tag, kind, first))
			continue
		}
		seen[kind][tag] = i
	}
	if len(errs) > 0 {
		return fmt.Errorf("contract shape %s failed validation:\n- %s", t, strings.Join(errs, "\n- "))
	}
	return nil
}
