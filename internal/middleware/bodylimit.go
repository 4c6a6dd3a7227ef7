// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
)

// MsgBodyTooLarge is returned when a request body exceeds the limit.
const MsgBodyTooLarge = "الملف كبير جداً. الحد الأقصى 100 ميجابايت"

// MaxBodySize caps request bodies at limit bytes. Requests that declare a
// larger Content-Length are rejected with 413 before the handler runs;
// bodies without a length are cut off by http.MaxBytesReader and the
// handler sees *http.MaxBytesError when reading past the limit.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, "validation", MsgBodyTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
