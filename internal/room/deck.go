package room

// DefaultQuestions is the built-in survey deck used when a room is created
// without its own questions.
func DefaultQuestions() []Question {
	return []Question{
		{
			Text: "Name something a programmer might blame when their code doesn't work as expected.",
			Answers: []Answer{
				{Text: "Bug in the Code", Points: 30},
				{Text: "Chat GPT", Points: 25},
				{Text: "Internet Connection", Points: 15},
				{Text: "Third-Party Libraries", Points: 12},
				{Text: "Clear The Cache", Points: 8},
				{Text: "A Typo", Points: 5},
				{Text: "Missing semicolon/Syntax", Points: 3},
				{Text: "Their PC", Points: 2},
			},
		},
		{
			Text: "Name a popular programming language that beginners often learn to code with.",
			Answers: []Answer{
				{Text: "Python", Points: 35},
				{Text: "JavaScript", Points: 26},
				{Text: "Java", Points: 13},
				{Text: "C", Points: 9},
				{Text: "C++", Points: 9},
				{Text: "Ruby", Points: 4},
				{Text: "Go", Points: 4},
			},
		},
		{
			Text: "Name a sorting algorithm you'd use to organize your messy code files faster than a snail's pace!",
			Answers: []Answer{
				{Text: "Quick Sort", Points: 33},
				{Text: "Merge Sort", Points: 27},
				{Text: "Heap Sort", Points: 15},
				{Text: "Bubble Sort", Points: 10},
				{Text: "Insertion Sort", Points: 8},
				{Text: "Selection Sort", Points: 7},
			},
		},
		{
			Text: "I'm a golden principle of UX design, who am I?",
			Answers: []Answer{
				{Text: "Consistency", Points: 32},
				{Text: "Affordance", Points: 21},
				{Text: "Constraints", Points: 19},
				{Text: "Feedback", Points: 16},
				{Text: "Visibility", Points: 12},
			},
		},
		{
			Text: "Name one of the top four networking protocols essential for Internet communication.",
			Answers: []Answer{
				{Text: "TCP/IP", Points: 40},
				{Text: "UDP", Points: 25},
				{Text: "HTTP", Points: 20},
				{Text: "DNS", Points: 15},
			},
		},
	}
}
