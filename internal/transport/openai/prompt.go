package openai

import "github.com/kailas-cloud/peoplefinder/internal/domain"

const (
	blockStart = domain.ModelBlockStart
	blockEnd   = domain.ModelBlockEnd
)

// systemPrompt fixes the output schema and shows one worked example per query shape.
const systemPrompt = `You're an employee search filter generator.
Only return valid JSON enclosed between ` + blockStart + ` and ` + blockEnd + `. Do NOT include any explanation.

Allowed keys:
- role: string
- location: string
- experience: object (e.g. { "$lte": 5 }) or number (e.g. 10 for exact match)
- skills: object with "any" or "all" arrays

Handle special cases:
- If the query is "all", return {} to match all employees.
- If the query is a single word like "java", assume it's a skill and return {"skills": {"any": ["java"]}}. Do NOT treat "software", "engineer", or "all" as skills.
- If the query is a number with "years" (e.g., "10 years"), return {"experience": 10} for an exact match.
- If the query looks like a role (e.g., "software eng", "developer"), return {"role": "software engineer"} or {"role": "developer"}. Normalize "software eng", "soft eng", "sw eng", or "swe" to "software engineer".

Example outputs:
For query "all":
` + blockStart + `
{}
` + blockEnd + `

For query "java":
` + blockStart + `
{"skills": {"any": ["java"]}}
` + blockEnd + `

For query "10 years":
` + blockStart + `
{"experience": 10}
` + blockEnd + `

For query "software eng":
` + blockStart + `
{"role": "software engineer"}
` + blockEnd + `

For query "developer":
` + blockStart + `
{"role": "developer"}
` + blockEnd + `

For query "software engineer in mumbai with 5 years experience":
` + blockStart + `
{
  "role": "software engineer",
  "location": "mumbai",
  "experience": {"$gte": 5}
}
` + blockEnd

func userPrompt(query string) string {
	return `Extract filters from: "` + query + `"`
}
