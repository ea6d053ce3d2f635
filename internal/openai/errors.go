package openai

import "fmt"

// ProviderError covers transport failures, non-2xx responses, responses with
// no choices, and empty message content.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("OpenAI API call failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("OpenAI API call failed: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
