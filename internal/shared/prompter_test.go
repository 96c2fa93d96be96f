package shared_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodguide/repokeeper/internal/shared"
)

const testPromptTextConstant = "Rename '/old' -> '/new'? [a/N/y] "

func TestIOConfirmationPrompterInterpretsResponses(testInstance *testing.T) {
	testCases := []struct {
		name           string
		response       string
		expectedResult shared.ConfirmationResult
	}{
		{
			name:           "short_affirmative",
			response:       "y\n",
			expectedResult: shared.ConfirmationResult{Confirmed: true},
		},
		{
			name:           "long_affirmative_with_mixed_case",
			response:       "YES\n",
			expectedResult: shared.ConfirmationResult{Confirmed: true},
		},
		{
			name:           "apply_to_all",
			response:       "a\n",
			expectedResult: shared.ConfirmationResult{Confirmed: true, ApplyToAll: true},
		},
		{
			name:           "explicit_decline",
			response:       "n\n",
			expectedResult: shared.ConfirmationResult{},
		},
		{
			name:           "empty_response_declines",
			response:       "\n",
			expectedResult: shared.ConfirmationResult{},
		},
		{
			name:           "end_of_input_declines",
			response:       "",
			expectedResult: shared.ConfirmationResult{},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			var outputBuffer bytes.Buffer
			prompter := shared.NewIOConfirmationPrompter(strings.NewReader(testCase.response), &outputBuffer)

			confirmationResult, confirmError := prompter.Confirm(testPromptTextConstant)

			require.NoError(subtest, confirmError)
			require.Equal(subtest, testCase.expectedResult, confirmationResult)
			require.Equal(subtest, testPromptTextConstant, outputBuffer.String())
		})
	}
}
