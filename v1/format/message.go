package format

import (
	"fmt"
	"strconv"
	"strings"
)

// formattingErrorPrefix is emitted in place of the substituted message when
// the template cannot be interpreted. The original template follows verbatim
// so the information is not lost.
const formattingErrorPrefix = "[FORMATTING ERROR] "

// FormatMessage substitutes positional {0}, {1}, ... placeholders in a
// message template. Substitution never fails the caller:
//
//   - nil params return the template unchanged
//   - placeholders without a matching parameter are left as-is
//   - surplus parameters are ignored
//   - a malformed template (unclosed brace, non-numeric or sub-formatted
//     placeholder such as {0,number}) yields the formatting-error form
func FormatMessage(template string, params []interface{}) string {
	if params == nil || !strings.ContainsRune(template, '{') {
		return template
	}

	var b strings.Builder
	b.Grow(len(template) + 16)

	for i := 0; i < len(template); i++ {
		ch := template[i]

		if ch != '{' {
			b.WriteByte(ch)
			continue
		}

		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			return formattingErrorPrefix + template
		}

		index, err := strconv.Atoi(strings.TrimSpace(template[i+1 : i+end]))
		if err != nil || index < 0 {
			return formattingErrorPrefix + template
		}

		if index < len(params) {
			b.WriteString(renderParam(params[index]))
		} else {
			b.WriteString(template[i : i+end+1])
		}

		i += end
	}

	return b.String()
}

func renderParam(v interface{}) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
