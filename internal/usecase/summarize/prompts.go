package summarize

import "fmt"

// summarySeparator joins chunk summaries between map and reduce phases.
const summarySeparator = "\n\n---\n\n"

const mapSystem = `You are a document summarizer. Summarize the following section of a document.
Focus on key points, main ideas, and important details.
Keep the summary concise but informative.`

const reduceSystem = `You are a document summarizer. You are given summaries of different sections from a single document.
Combine these into one coherent, well-structured summary.
Use markdown formatting for better readability.
Highlight the most important points and maintain logical flow.`

// buildMapPrompt constructs the per-chunk summarization prompt.
func buildMapPrompt(chunkText string) string {
	return fmt.Sprintf("%s\n\nSummarize this section:\n\n%s", mapSystem, chunkText)
}

// buildReducePrompt constructs the combine prompt for a batch of summaries.
func buildReducePrompt(combined string) string {
	return fmt.Sprintf("%s\n\nCombine these section summaries into a final summary:\n\n%s", reduceSystem, combined)
}
