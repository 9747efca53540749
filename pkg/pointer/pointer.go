// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer holds the generic helpers used for optional fields in
// partial updates, where a nil pointer means "leave unchanged".
package pointer

// Or dereferences p, or returns current when p is nil.
func Or[T any](p *T, current T) T {
	if p == nil {
		return current
	}
	return *p
}
