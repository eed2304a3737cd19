package llm

import (
	"fmt"
	"strings"
)

// BuildExtractionPrompt renders the instruction block for one extraction
// attempt. Attempt numbers above 1 append a stronger JSON-only directive for
// models that wrapped or skipped the JSON the first time round.
func BuildExtractionPrompt(message string, attempt int) string {
	safe := strings.ReplaceAll(message, `"`, `\"`)
	safe = strings.ReplaceAll(safe, "\r", "\n")

	var b strings.Builder
	b.WriteString(`You are a smart logistics parser.

Extract the following *mandatory* details from this message:

- truckNumber (which may be 9 or 10 characters long, possibly containing spaces or hyphens)
  Example: "MH 09 HH 4512" should be returned as "MH09HH4512"
- to
- weight
- description

Also, extract the *optional* fields:
- from (this is optional but often present)
- name (if the message contains a pattern like "n - name", "n-name", " n name", " n. name", or any variation where 'n' is followed by '-' or '.' or space, and then the person's name, extract the text after it as the name value)

If truckNumber is missing, but the message contains words like "new truck", "new tractor", "new gadi", "bellgadi", "bellgada", "bellgade", or "bellgad",
then set truckNumber to that phrase (exactly as it appears).

If the weight contains the word "fix" or similar, preserve it as-is.

Always treat the text before the word "to" as the 'from' location and the text after "to" as the 'to' location.

Here is the message:
"`)
	b.WriteString(safe)
	b.WriteString(`"

Return the extracted information strictly in the following JSON format:

{
  "truckNumber": "",
  "from": "",
  "to": "",
  "weight": "",
  "description": "",
  "name": ""
}

If any field is missing, return it as an empty string.

Ensure the output is only the raw JSON with no extra text, notes, or formatting outside the JSON structure.`)

	if attempt > 1 {
		b.WriteString(fmt.Sprintf("\n\nIMPORTANT (Attempt %d): If you failed to return JSON previously, return ONLY the JSON object now with no extra text.", attempt))
	}
	return b.String()
}
