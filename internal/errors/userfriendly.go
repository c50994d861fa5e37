package errors

import (
	"fmt"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapNotFound wraps a failed program lookup
func WrapNotFound(err error, key string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("No program %s in the catalog", key),
		Reason:  "The id does not match any program in the active catalog",
		Hint:    "Program ids are positive integers; device keys look like program01",
		Try:     "merlinctl programs list",
		Err:     err,
	}
}

// WrapCatalogError wraps catalog file load and validation errors
func WrapCatalogError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Cannot use catalog %s", path),
		Reason:  extractCatalogReason(err),
		Hint:    "Catalog files may be YAML, JSON or TOML, chosen by extension",
		Try:     fmt.Sprintf("merlinctl programs validate --file %s", path),
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Delete the file to fall back to defaults, or fix the field named above",
		Try:     fmt.Sprintf("merlinctl --config %s version", configPath),
		Err:     err,
	}
}

// WrapStatusError wraps errors reading a device status document
func WrapStatusError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Cannot read device status from %s", path),
		Reason:  extractCatalogReason(err),
		Hint:    "Expected the JSON body returned by the device status endpoint",
		Err:     err,
	}
}

func extractCatalogReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "no such file") {
		return "File does not exist"
	}
	if strings.Contains(errStr, "permission denied") {
		return "File is not readable"
	}
	if strings.Contains(errStr, "cannot infer catalog format") {
		return "Unrecognised file extension"
	}
	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "invalid character") {
		return "File contents could not be decoded"
	}
	if strings.Contains(errStr, "validate catalog") {
		return "Catalog failed validation"
	}

	return "Catalog could not be loaded"
}
