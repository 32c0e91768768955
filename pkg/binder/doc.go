// Package binder binds HTTP request data into structs.
//
// JSON decodes a strict application/json body with a size limit. Path fills
// fields tagged `path:"name"` from router parameters; string, integer, float,
// bool, pointer and slice fields are supported. Errors wrap the package
// sentinels so callers can tell parse failures from media-type problems:
//
//	if errors.Is(err, binder.ErrUnsupportedMediaType) {
//		// 415
//	}
package binder
