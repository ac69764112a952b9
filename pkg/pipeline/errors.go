package pipeline

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrMissingRegex   = errors.New("missing regular expression")
	ErrInvalidRegex   = errors.New("invalid regular expression")
	ErrMissingSuffix  = errors.New("missing suffix")
	ErrMissingPrefix  = errors.New("missing prefix")
	ErrInvalidCommand = errors.New("invalid command specified")
)

// TokenError is returned by New when the command tokens cannot be turned into a pipeline.
// It unwraps to one of the sentinel errors of this package.
type TokenError struct {
	// Err is the sentinel describing the failure.
	Err error
	// Cause is the underlying error, if any. It is set when a pattern does not compile.
	Cause error
	// Token is the token the failure relates to.
	Token string
	// Pos is the position of Token in the token list.
	Pos int
}

func (e *TokenError) Error() string {
	msg := fmt.Sprintf("%s: %s (token %d)", e.Err, strconv.Quote(e.Token), e.Pos+1)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// IsConstructionError reports whether err was returned because of invalid command tokens.
func IsConstructionError(err error) bool {
	var tokenErr *TokenError

	return errors.As(err, &tokenErr)
}
