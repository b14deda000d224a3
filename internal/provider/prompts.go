package provider

import (
	"fmt"
	"strings"
)

const questionsJSONShape = `{"questions":[{"text":"question text","category":"clarity|specificity|context|constraints","impact":"high|medium|low","explanation":"why this matters","options":["first choice","second choice","third choice"],"defaultOption":1}]}`

// questionsInstruction builds the system instruction asking the model for
// strictly structured question JSON. The strict variant is for vendors whose
// models tend to wrap output in commentary or markdown.
func questionsInstruction(maxQuestions int, strict bool) string {
	var b strings.Builder

	b.WriteString("You are a prompt refinement assistant. The user will send you a prompt they intend to give to a large language model. ")
	fmt.Fprintf(&b, "Generate between 5 and %d multiple-choice questions whose answers would make the prompt clearer and more specific. ", maxQuestions)
	b.WriteString("Respond with a single JSON object of exactly this shape:\n")
	b.WriteString(questionsJSONShape)
	b.WriteString("\nRules: every question has exactly 3 options ordered from most affirmative to most negative, ")
	b.WriteString("defaultOption is the index of the neutral middle choice, ")
	b.WriteString(`category is one of "clarity", "specificity", "context", "constraints" and impact is one of "high", "medium", "low".`)

	if strict {
		b.WriteString(" Return raw JSON only. Do not wrap the JSON in markdown code fences and do not add any commentary before or after it.")
	} else {
		b.WriteString(" Do not include any text outside the JSON object.")
	}

	return b.String()
}

const refineInstruction = "You are a prompt refinement assistant. The user supplies their original prompt followed by a transcript of clarifying questions and answers. " +
	"Rewrite the original prompt so that it preserves the user's intent, incorporates the answers and adds specificity. " +
	"Return ONLY the refined prompt text, with no preamble, commentary or formatting around it."
