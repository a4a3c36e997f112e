// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError describes a failed operation in terms a release engineer
	// can act on. Build one with NewErrorContext:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("stage build outputs").
	//		WithResource("build/src/libtaos_odbc.so.0.1").
	//		WithSuggestion("Run 'taosrelease -t build' first").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase, rendered as "failed to <Operation>".
		Operation string
		// Resource is the file, directory or tool involved.
		Resource string
		// Suggestions are printed as a bulleted list under the message.
		Suggestions []string
		// Issue links to a catalog entry with a long-form explanation. Zero
		// means none.
		Issue Id
		Cause error
	}

	// ErrorContext accumulates the fields of an ActionableError.
	ErrorContext struct {
		e ActionableError
	}
)

// NewErrorContext starts an empty builder.
func NewErrorContext() *ErrorContext { return &ErrorContext{} }

// Error renders "failed to <op>[: <resource>][: <cause>]" on one line.
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// Format is Error followed by the suggestions. Verbose output also lists
// every error in the cause chain, outermost first.
func (e *ActionableError) Format(verbose bool) string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if len(e.Suggestions) > 0 {
		sb.WriteString("\n")
		for _, s := range e.Suggestions {
			fmt.Fprintf(&sb, "\n  • %s", s)
		}
	}
	if verbose && e.Cause != nil {
		sb.WriteString("\n\nError chain:")
		for i, err := 1, e.Cause; err != nil; i, err = i+1, errors.Unwrap(err) {
			fmt.Fprintf(&sb, "\n  %d. %s", i, err)
		}
	}
	return sb.String()
}

// WithOperation sets the operation. It is the only required field.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.e.Operation = op
	return c
}

// WithResource sets the resource.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.e.Resource = res
	return c
}

// WithSuggestion appends a suggestion.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.e.Suggestions = append(c.e.Suggestions, s)
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.e.Issue = id
	return c
}

// Wrap sets the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.e.Cause = err
	return c
}

// Build returns the error, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.e.Operation == "" {
		return nil
	}
	e := c.e
	e.Suggestions = append([]string(nil), c.e.Suggestions...)
	return &e
}

// BuildError is Build typed as error, so a missing operation yields an
// untyped nil rather than a nil *ActionableError.
func (c *ErrorContext) BuildError() error {
	if e := c.Build(); e != nil {
		return e
	}
	return nil
}

// IssueOf returns the catalog entry linked from the first ActionableError in
// err's chain, or nil.
func IssueOf(err error) *Issue {
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Issue == 0 {
		return nil
	}
	return Get(ae.Issue)
}

// FormatForDisplay renders err for the console. Errors that are, or wrap, an
// ActionableError get its Format; anything else prints as err.Error().
func FormatForDisplay(err error, verbose bool) string {
	var ae *ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
