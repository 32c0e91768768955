package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path binds fields tagged `path:"name"` using extractor, typically chi.URLParam.
// Fields without a value keep their zero value.
//
//	type TierRequest struct {
//		Tier string `path:"tier"`
//	}
//
//	r.Get("/access/{tier}", handler.Wrap(h,
//		handler.WithBinders(binder.Path(chi.URLParam)),
//	))
func Path(extractor func(r *http.Request, fieldName string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		rt := rv.Type()
		for i := range rt.NumField() {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, ok := fieldName(sf, "path")
			if !ok {
				continue
			}
			raw := extractor(r, name)
			if raw == "" {
				continue
			}
			if err := assign(rv.Field(i), raw); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrFailedToParsePath, sf.Name, err)
			}
		}
		return nil
	}
}
