package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced technical interviewer who writes clear, self-contained coding interview questions. Use Markdown for structure.`

func questionPrompt(req QuestionRequest) string {
	prompt := fmt.Sprintf("Generate a %s difficulty coding interview question about %s", req.Difficulty, req.Topic)
	if req.Company != "" {
		prompt += " that might be asked at " + req.Company
	}

	return prompt + ". Put the title alone on the first line, then the full problem statement with examples and constraints."
}

func templatePrompt(title, content string) string {
	return fmt.Sprintf("Create a code template for this question: %s\n%s", title, content)
}

func solutionPrompt(title, content string) string {
	return fmt.Sprintf("Provide a solution for this question: %s\n%s", title, content)
}

func testCasesPrompt(title, content string) string {
	return fmt.Sprintf("Generate 3 test cases for this question: %s\n%s", title, content)
}

func similarPrompt(seed Seed) string {
	return fmt.Sprintf(
		"Generate a different %s coding question similar to this one on %s:\nTitle: %s\nContent: %s\n"+
			"Do not repeat the same question. Keep difficulty level and topic consistent. "+
			"Put the title alone on the first line.",
		seed.Difficulty, seed.Topic, seed.Title, seed.Content,
	)
}

func enhancePrompt(seed Seed) string {
	return fmt.Sprintf(
		"Rewrite the coding interview question titled %q (%s, %s) as well-structured Markdown with these sections: "+
			"Description, Examples (Input, Output and Explanation in bold), Constraints as a bullet list, "+
			"Expected Complexity, Notes. Do not include a code template.\n\nOriginal:\n%s",
		seed.Title, seed.Difficulty, seed.Topic, seed.Content,
	)
}

func evaluationPrompt(req EvaluationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n\n", req.Question)
	fmt.Fprintf(&b, "User's solution (%s):\n```%s\n%s\n```\n\n", req.Language, req.Language, req.Code)
	b.WriteString("Evaluate this solution for correctness, efficiency, and code quality.\n")

	if req.Solution != "" {
		fmt.Fprintf(&b, "\nReference solution:\n```\n%s\n```\n", req.Solution)
	}

	if req.TestCases != "" {
		fmt.Fprintf(&b, "\nTest cases:\n%s\n", req.TestCases)
	}

	return b.String()
}
