// Package binder turns HTTP request input into a flat map of field values.
//
// Record merges the query string, the request body and chi URL parameters
// into a map[string]any whose values are what the validator understands:
// strings, string slices, decoded JSON values and uploaded files.
//
//	data, err := binder.Record(r)
//	if err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
//	if !v.Check(data, nil) {
//		// render v.Errors()
//	}
//
// Supported body types are application/x-www-form-urlencoded,
// multipart/form-data and application/json. Uploaded file names are
// stripped of path components.
package binder
