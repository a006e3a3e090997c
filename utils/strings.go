// SPDX-License-Identifier: MIT

package utils

import "strings"

// DefaultQuote is the single quote used by JoinQuoted callers in this module.
const DefaultQuote = "'"

// JoinQuoted wraps every value in quote and joins them with ", ".
//
//	JoinQuoted([]string{"csr", "csc"}, "'") == "'csr', 'csc'"
func JoinQuoted(values []string, quote string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote + v + quote
	}

	return strings.Join(quoted, ", ")
}
