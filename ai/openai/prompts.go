package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/deskrag/core"
)

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "intent": {
      "type": "string",
      "enum": ["policy", "menu", "memo", "general"]
    },
    "reasoning": {
      "type": "string"
    },
    "confidence": {
      "type": "integer",
      "minimum": 1,
      "maximum": 5
    }
  },
  "required": ["intent", "reasoning", "confidence"],
  "additionalProperties": false
}`

const intentPromptTemplate = `Classify this employee query into ONE category based on what type of document would answer it:

- "policy" - Questions about rules, permissions, procedures, what's allowed/not allowed, work requirements, benefits, HR matters, remote work, time off, company guidelines
- "menu" - Questions about food, cafeteria, meals, dining, lunch, dinner, breakfast
- "memo" - Questions about announcements, updates, communications, notices
- "general" - Unclear or could need multiple document types

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The intent field must match exactly one of the listed values: %s.
- Confidence is an integer from 1 (unsure) to 5 (certain).
- Keep the reasoning to a single short sentence.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Can I work from home on Fridays?"
Output:
{"intent":"policy","reasoning":"Asks what is allowed under the remote work rules.","confidence":5}

Example:
Input: "whats for lunch tomorrow"
Output:
{"intent":"menu","reasoning":"Asks about cafeteria food.","confidence":5}

Example:
Input: "anything new going on?"
Output:
{"intent":"general","reasoning":"Too vague to map to a single document type.","confidence":2}`

const answerResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "answer": {
      "type": "string"
    },
    "reasoning": {
      "type": "string"
    },
    "cited_sources": {
      "type": "array",
      "items": {
        "type": "string"
      }
    },
    "policy_allows_remote": {
      "type": ["boolean", "null"]
    }
  },
  "required": ["answer", "reasoning", "cited_sources"],
  "additionalProperties": false
}`

const answerPromptTemplate = `You are a helpful HR assistant for TechCorp Inc.

Answer the employee's question using ONLY the provided documents.

1. ONLY answer if the documents contain relevant information to the question.
2. ALWAYS prioritize the MOST RECENT policy when there are conflicts
3. If an older policy contradicts a newer policy, the NEWER policy wins
4. If the documents DO NOT contain information to answer the question, respond with:
   "answer": "I don't have information about that in the company documents. I can only help with TechCorp policies, menus, and memos.", "cited_sources": []
5. DO NOT make up information or use knowledge outside the provided documents
6. Be direct and concise
7. Cite only document names that appear in the Documents section
8. Set policy_allows_remote to true or false only when the question concerns remote work and a policy settles it; otherwise use null

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s`

// buildIntentPrompt creates the classification system prompt with the
// document types embedded.
func buildIntentPrompt() string {
	return fmt.Sprintf(intentPromptTemplate,
		intentResponseSchema,
		strings.Join(core.DocTypeNames(), ", "))
}

// buildAnswerPrompt creates the answer-generation system prompt.
func buildAnswerPrompt() string {
	return fmt.Sprintf(answerPromptTemplate, answerResponseSchema)
}

// buildAnswerRequest assembles the user message carrying the retrieved
// document context and the employee's question.
func buildAnswerRequest(question, contextBlock string) string {
	return fmt.Sprintf("Documents:\n%s\n\nEMPLOYEE QUESTION: %s\n\nANSWER (with citations):",
		contextBlock, question)
}
