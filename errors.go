package nscache

import (
	"fmt"
)

// InvalidateError reports a namespace sweep that could not complete. The
// namespace key is retained in the backend so a retry can finish the sweep;
// member TTLs bound any residual staleness either way.
type InvalidateError struct {
	NamespaceKey string
	Members      int // members enumerated before the sweep
	Failed       int // member deletes that failed

	EnumErr  error   // member enumeration failed; nothing was swept
	DelErrs  []error // member delete failures
	IndexErr error   // namespace key delete failed after a clean sweep
}

func (e *InvalidateError) Error() string {
	switch {
	case e.EnumErr != nil:
		return fmt.Sprintf("invalidate %q: enumerate members failed: %v", e.NamespaceKey, e.EnumErr)
	case len(e.DelErrs) > 0:
		return fmt.Sprintf("invalidate %q: %d of %d member deletes failed: %v",
			e.NamespaceKey, e.Failed, e.Members, e.DelErrs[0])
	case e.IndexErr != nil:
		return fmt.Sprintf("invalidate %q: index key delete failed: %v", e.NamespaceKey, e.IndexErr)
	default:
		return fmt.Sprintf("invalidate %q: unknown error", e.NamespaceKey)
	}
}

func (e *InvalidateError) Unwrap() []error {
	errs := make([]error, 0, len(e.DelErrs)+2)
	if e.EnumErr != nil {
		errs = append(errs, e.EnumErr)
	}
	errs = append(errs, e.DelErrs...)
	if e.IndexErr != nil {
		errs = append(errs, e.IndexErr)
	}
	return errs
}
