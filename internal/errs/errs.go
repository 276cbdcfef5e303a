package errs

import (
	"errors"
	"fmt"

	"code-analyzer/pkg/analyzer/lang"
	"code-analyzer/pkg/analyzer/parser"
	"code-analyzer/pkg/response"
)

const (
	CodeBadRequest          = "code-analyzer.bad_request"
	CodeSyntaxError         = "code-analyzer.syntax_error"
	CodeUnsupportedLanguage = "code-analyzer.unsupported_language"
	CodeFileTooLarge        = "code-analyzer.file_too_large"
	CodeRateLimited         = "code-analyzer.rate_limited"
	CodeInternalServerError = "code-analyzer.internal_server_error"
)

var ErrUnSupportedLanguage = response.NewError(CodeUnsupportedLanguage, "Unsupported Language")
var ErrSyntax = response.NewError(CodeSyntaxError, "syntax error")
var ErrRateLimited = response.NewError(CodeRateLimited, "too many requests")
var ErrBodyTooLarge = response.NewError(CodeFileTooLarge, "request body too large")
var ErrInternal = response.NewError(CodeInternalServerError, "internal server error")

var errorInvalidParamFmt = "invalid request params: %s %v"
var errorMissingParamFmt = "missing required param: %s"

func NewInvalidParamErr(name string, value interface{}) error {
	return response.NewError(CodeBadRequest, fmt.Sprintf(errorInvalidParamFmt, name, value))
}

func NewMissingParamError(name string) error {
	return response.NewError(CodeBadRequest, fmt.Sprintf(errorMissingParamFmt, name))
}

// FromAnalyzeError maps an analyzer error to a coded error for the HTTP layer.
// The second result reports whether the caller is at fault.
func FromAnalyzeError(err error) (error, bool) {
	switch {
	case err == nil:
		return nil, false
	case errors.Is(err, parser.ErrSyntax):
		var serr *parser.SyntaxError
		if errors.As(err, &serr) {
			return response.WithMessage(ErrSyntax, serr.Error()), true
		}
		return ErrSyntax, true
	case lang.IsUnSupportedFileError(err):
		return response.WithMessage(ErrUnSupportedLanguage, err.Error()), true
	}
	return response.WithMessage(ErrInternal, err.Error()), false
}
