package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/phrazzld/task-api/internal/domain"
)

// DecodeJSON decodes the request body into v.
//
// An empty body leaves v untouched so that field validation reports the
// missing fields. JSON type mismatches come back as *domain.ValidationError;
// oversized bodies wrap ErrBodyTooLarge and any other syntax failure wraps
// ErrInvalidJSON.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, maxBytesErr.Limit)
		}

		if validationErr, ok := domain.IssueFromDecodeError(err); ok {
			return validationErr
		}

		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return nil
}
