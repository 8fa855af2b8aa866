package rag

import "fmt"

// Prompt builders. Wording is kept directive and structured because small
// local models (4-8B) drift badly on open-ended instructions. The setup
// prompt asks for the question in double quotes so extraction is a string
// match first and a heuristic second.

func buildSetupPrompt(context string) string {
	return fmt.Sprintf(`Use the following resume context to generate a thoughtful interview question:
Context: %s

Guidelines for generating questions:
1. Focus on technical skills mentioned in the resume
2. Ask about specific projects or achievements
3. Include scenario-based questions that test problem-solving
4. Ensure the question is open-ended and requires detailed answers
5. The question should be challenging but fair

Question: Generate a question that would be asked based on the skillset specified in the resume. Put the question itself in double quotes.`, context)
}

func buildFeedbackPrompt(question, answer string) string {
	return fmt.Sprintf(`Question: %s
Candidate's Answer: %s

Provide a comprehensive evaluation with the following structure:
1. Score (0-100): Evaluate based on accuracy, completeness, and depth of understanding. Write the numeric score as "Score: N".
2. Strengths: List 1-2 strong points in the answer
3. Areas for improvement: Identify 1-2 specific areas that could be better
4. Overall assessment: 1-2 sentences summarizing the quality of the answer

Be concise and professional. DO NOT include any internal thinking or reasoning process.`, question, answer)
}

func buildFollowUpPrompt(question, answer string) string {
	return fmt.Sprintf(`Based on the following question and the candidate's answer, generate a follow-up question:

Original Question: %s
Candidate's Answer: %s

Guidelines for the follow-up question:
1. Dig deeper into areas where the candidate showed knowledge
2. Explore any gaps or areas that need clarification
3. Be specific and contextual to their answer
4. Should be challenging but fair

Provide ONLY the follow-up question, no explanations or commentary.`, question, answer)
}
