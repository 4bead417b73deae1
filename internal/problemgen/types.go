package problemgen

// Problem is a generated word problem together with its answer. The answer
// stays server-side until the learner has submitted.
type Problem struct {
	// Text is the word problem shown to the learner, in plain text.
	Text string

	// Answer is the exact numeric solution.
	Answer float64
}

// Topic is one of the areas a problem may exercise.
type Topic string

const (
	TopicFractions   Topic = "fractions"
	TopicDecimals    Topic = "decimals"
	TopicPercentages Topic = "percentages"
	TopicAlgebra     Topic = "basic algebra"
)

// AllTopics lists the topics in the order they appear in the prompt.
var AllTopics = []Topic{TopicFractions, TopicDecimals, TopicPercentages, TopicAlgebra}
